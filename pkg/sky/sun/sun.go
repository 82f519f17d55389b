// Package sun computes the direction towards the sun and the radiance of the sun disc.
//
// Directions are in the local horizon frame used by all sky models: X east, Y north, Z up.
package sun

import (
	stdmath "math"
	"time"

	"github.com/chewxy/math32"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/Faultbox/sunsky/pkg/math"
)

const degToRad = math32.Pi / 180

// Direction returns the unit vector towards the sun.
//
// localTime is decimal hours (6.25 = 6:15), timeZone is hours relative to UTC (east positive),
// dayOfYear is 1-365, latitude and longitude are degrees with north and east positive.
// The result may lie below the horizon (Z < 0).
func Direction(localTime, timeZone float32, dayOfYear int, latitude, longitude float32) math.Vec3 {
	day := float32(dayOfYear)
	standardMeridian := timeZone * 15

	// Equation of time plus the offset from the zone's standard meridian.
	solarTime := localTime +
		0.170*math32.Sin(4*math32.Pi*(day-80)/373) -
		0.129*math32.Sin(2*math32.Pi*(day-8)/355) +
		(longitude-standardMeridian)/15

	declination := 0.4093 * math32.Sin(2*math32.Pi*(day-81)/368)

	lat := latitude * degToRad
	hour := math32.Pi * solarTime / 12

	sinLat, cosLat := math32.Sin(lat), math32.Cos(lat)
	sinDec, cosDec := math32.Sin(declination), math32.Cos(declination)
	sinHour, cosHour := math32.Sin(hour), math32.Cos(hour)

	return math.Vec3{
		X: cosDec * sinHour,
		Y: cosLat*sinDec + sinLat*cosDec*cosHour,
		Z: sinLat*sinDec - cosLat*cosDec*cosHour,
	}
}

// DirectionAt returns the unit vector towards the sun at an absolute instant, using apparent
// solar coordinates and apparent sidereal time. Latitude and longitude are in degrees.
func DirectionAt(t time.Time, latitude, longitude float64) math.Vec3 {
	jd := julian.TimeToJD(t.UTC())

	ra, dec := solar.ApparentEquatorial(jd)
	gast := sidereal.Apparent(jd)

	lat := latitude * stdmath.Pi / 180
	lon := longitude * stdmath.Pi / 180
	hourAngle := gast.Angle().Rad() + lon - stdmath.Atan2(ra.Sin(), ra.Cos())

	sinLat, cosLat := stdmath.Sincos(lat)
	sinH, cosH := stdmath.Sincos(hourAngle)
	sinDec, cosDec := dec.Sin(), dec.Cos()

	return math.Vec3{
		X: float32(-cosDec * sinH),
		Y: float32(cosLat*sinDec - sinLat*cosDec*cosH),
		Z: float32(sinLat*sinDec + cosLat*cosDec*cosH),
	}
}

// ElevationHeading returns the elevation above the horizon and the compass heading (clockwise
// from north) of a direction, both in degrees.
func ElevationHeading(dir math.Vec3) (elevation, heading float32) {
	elevation = math32.Asin(math.Clamp(dir.Z, -1, 1)) / degToRad
	heading = 90 - math32.Atan2(dir.Y, dir.X)/degToRad
	if heading < 0 {
		heading += 360
	}
	return elevation, heading
}

// ThetaPhi returns the zenith angle and the azimuth (counter-clockwise from east) of a
// direction, in radians.
func ThetaPhi(dir math.Vec3) (theta, phi float32) {
	return math32.Acos(math.Clamp(dir.Z, -1, 1)), math32.Atan2(dir.Y, dir.X)
}
