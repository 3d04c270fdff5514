package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set during build via -ldflags.
	Version = "0.1.0-dev"

	rootCmd = &cobra.Command{
		Use:   "jayctl",
		Short: "jayctl - Wayland compositor protocol core",
		Long: `jayctl runs and controls the compositor's protocol core: the wire
codec, object registry, global registry, scene tree, and seat/input router
that every Wayland client talks to over $WAYLAND_DISPLAY.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)
}

// exitError prints a formatted error to stderr and exits nonzero, the
// convention every subcommand uses for an IPC failure.
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
