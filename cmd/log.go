package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bnema/waycore/internal/ui"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Follow the compositor's log file",
	Long:  `Log asks the compositor for its active log file path, then follows new lines appended to it.`,
	RunE:  runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	client, err := controlClient()
	if err != nil {
		exitError("%v", err)
	}
	path, err := client.Send("log")
	if err != nil {
		exitError("log: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		exitError("opening log file %s: %v", path, err)
	}
	defer f.Close()

	fmt.Println(ui.InfoStyle.Render("following " + path))
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			printLogLine(line)
		}
		if err == io.EOF {
			time.Sleep(200 * time.Millisecond)
			continue
		}
		if err != nil {
			return fmt.Errorf("reading log file: %w", err)
		}
	}
}

// printLogLine styles a log-file line whose first field is one of the
// level names DEBUG, INFO, WARN, ERROR or FATAL (case-insensitive); any
// other line, including one that starts with a timestamp, is printed
// unchanged.
func printLogLine(line string) {
	line = strings.TrimRight(line, "\n")
	fields := strings.Fields(line)
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"} {
		if len(fields) > 0 && strings.EqualFold(fields[0], level) {
			fmt.Println(ui.FormatLevelLine(level, strings.TrimSpace(strings.TrimPrefix(line, fields[0]))))
			return
		}
	}
	fmt.Println(line)
}
