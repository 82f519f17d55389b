package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/sunsky/internal/logger"
	"github.com/Faultbox/sunsky/internal/tablefile"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables [file]",
		Short: "Export the lookup tables of a table or BRDF sky type",
		Long: `Tables writes the separable or BRDF tables of the configured sky as YAML, or JSON
when the file ends in .json. The configured compression appends .zst or .sz unless the name
already carries one. The default file is sky-tables.yaml in the output directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(a.cfg)
			if err != nil {
				return err
			}
			comp, err := tablefile.ParseCompression(a.cfg.Output.Compression)
			if err != nil {
				return err
			}

			m := s.model(s.sunDir(a.cfg.Site.LocalTime))
			doc, err := tablefile.FromModel(m)
			if err != nil {
				return err
			}

			path := filepath.Join(a.cfg.Output.Dir, "sky-tables.yaml")
			if len(args) == 1 {
				path = args[0]
			}
			if tablefile.CompressionFor(path) == tablefile.None {
				path += comp.Ext()
			}

			if err := tablefile.Save(path, doc); err != nil {
				return err
			}
			logger.Info("exported tables", zap.String("path", path), zap.String("sky", doc.SkyType))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
