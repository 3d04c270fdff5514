package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/waycore/internal/ui"
	"github.com/spf13/cobra"
)

var validLogLevels = map[string]bool{
	"error": true, "warn": true, "info": true, "debug": true, "trace": true,
}

var setLogLevelCmd = &cobra.Command{
	Use:   "set-log-level LEVEL",
	Short: "Change the running compositor's log level",
	Long:  `Set-log-level sets the compositor's log level to one of error, warn, info, debug, trace.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := strings.ToLower(args[0])
		if !validLogLevels[level] {
			exitError("invalid log level %q (want one of error, warn, info, debug, trace)", args[0])
		}
		client, err := controlClient()
		if err != nil {
			exitError("%v", err)
		}
		if _, err := client.Send("set-log-level " + level); err != nil {
			exitError("set-log-level: %v", err)
		}
		fmt.Println(ui.SuccessStyle.Render(ui.IconSuccess) + " log level set to " + level)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setLogLevelCmd)
}
