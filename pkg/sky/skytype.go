package sky

import (
	"fmt"
	"strings"
)

// SkyType selects the representation a Model evaluates.
type SkyType int

const (
	Preetham SkyType = iota
	PreethamTable
	PreethamBRDF
	Hosek
	HosekTable
	HosekBRDF
	CIEClear
	CIEOvercast
	CIEPartlyCloudy
	CIEStandard
	NumSkyTypes
)

var skyTypeNames = [NumSkyTypes]struct{ name, short string }{
	Preetham:        {"Preetham", "pt"},
	PreethamTable:   {"PreethamTable", "ptt"},
	PreethamBRDF:    {"PreethamBRDF", "ptb"},
	Hosek:           {"Hosek", "hk"},
	HosekTable:      {"HosekTable", "hkt"},
	HosekBRDF:       {"HosekBRDF", "hkb"},
	CIEClear:        {"cieClear", "cc"},
	CIEOvercast:     {"cieOvercast", "co"},
	CIEPartlyCloudy: {"ciePartlyCloudy", "cp"},
	CIEStandard:     {"cieStandard", "cs"},
}

func (t SkyType) String() string {
	if t < 0 || t >= NumSkyTypes {
		return fmt.Sprintf("SkyType(%d)", int(t))
	}
	return skyTypeNames[t].name
}

// Short returns the abbreviated name accepted by ParseSkyType.
func (t SkyType) Short() string {
	if t < 0 || t >= NumSkyTypes {
		return ""
	}
	return skyTypeNames[t].short
}

// ParseSkyType accepts a sky type name or its abbreviation, ignoring case.
func ParseSkyType(s string) (SkyType, error) {
	for t := SkyType(0); t < NumSkyTypes; t++ {
		if strings.EqualFold(s, skyTypeNames[t].name) || strings.EqualFold(s, skyTypeNames[t].short) {
			return t, nil
		}
	}
	return Preetham, fmt.Errorf("unknown sky type %q", s)
}

// SkyTypes returns every sky type in declaration order.
func SkyTypes() []SkyType {
	types := make([]SkyType, NumSkyTypes)
	for i := range types {
		types[i] = SkyType(i)
	}
	return types
}

// IsHosek reports whether t evaluates the Hosek-Wilkie model.
func (t SkyType) IsHosek() bool {
	return t == Hosek || t == HosekTable || t == HosekBRDF
}

// NeedsTable reports whether Update must fit the separable table for t.
func (t SkyType) NeedsTable() bool {
	return t == PreethamTable || t == PreethamBRDF || t == HosekTable || t == HosekBRDF
}

// NeedsBRDF reports whether Update must build the convolved tables for t.
func (t SkyType) NeedsBRDF() bool {
	return t == PreethamBRDF || t == HosekBRDF
}
