package cmd

import (
	"fmt"

	"github.com/bnema/waycore/internal/ui"
	"github.com/spf13/cobra"
)

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Quit the running compositor",
	Long:  `Quit asks the compositor listening on $WAYLAND_DISPLAY to shut down.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlClient()
		if err != nil {
			exitError("%v", err)
		}
		if _, err := client.Send("quit"); err != nil {
			exitError("quit: %v", err)
		}
		fmt.Println(ui.SuccessStyle.Render(ui.IconSuccess) + " compositor stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quitCmd)
}
