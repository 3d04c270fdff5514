package cmd

import (
	"fmt"

	"github.com/bnema/waycore/internal/ui"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Take a screenshot",
	Long:  `Screenshot asks the compositor to capture the current scene and prints the resulting file path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := controlClient()
		if err != nil {
			exitError("%v", err)
		}
		path, err := client.Send("screenshot")
		if err != nil {
			exitError("screenshot: %v", err)
		}
		fmt.Println(ui.FormatListItem(path, true))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
}
