// sunsky renders and inspects analytic sky models.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/Faultbox/sunsky/internal/config"
	"github.com/Faultbox/sunsky/internal/logger"
)

var version = "dev" // Injected at build time via ldflags

// app carries the state shared by every subcommand.
type app struct {
	flags   *config.Flags
	cfg     *config.Config
	profile string
	prof    interface{ Stop() }
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "sunsky",
		Short: "Render Preetham, Hosek-Wilkie and CIE skies",
		Long: `sunsky evaluates sun and sky models for a site and time and writes the result as
images or lookup tables. Settings come from sunsky.yaml, overridden by flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	a.flags = config.BindFlags(root.PersistentFlags())
	root.PersistentFlags().StringVar(&a.profile, "profile", "", "Write a cpu or mem profile to the current directory")

	root.AddCommand(
		newRenderCmd(a),
		newDayCmd(a),
		newSunCmd(a),
		newTablesCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root, a
}

// run executes the command line in args, writing results to stdout.
func run(args []string, stdout io.Writer) error {
	root, a := newRootCmd()
	defer a.teardown()

	root.SetArgs(args)
	root.SetOut(stdout)
	return root.Execute()
}

func (a *app) setup() error {
	cfg, err := config.Load(a.flags.ConfigPath(), a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.Sugar.Debugf("config: %+v", cfg)

	switch a.profile {
	case "":
	case "cpu":
		a.prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
	case "mem":
		a.prof = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
	default:
		return fmt.Errorf("unknown profile kind %q (cpu, mem)", a.profile)
	}
	return nil
}

func (a *app) teardown() {
	if a.prof != nil {
		a.prof.Stop()
		a.prof = nil
	}
	logger.Sync()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		// No config needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
