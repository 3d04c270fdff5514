package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/waycore/internal/config"
	"github.com/bnema/waycore/internal/display"
	"github.com/bnema/waycore/internal/logger"
	"github.com/bnema/waycore/internal/protocol"
	"github.com/bnema/waycore/internal/scene"
	"github.com/bnema/waycore/internal/seat"
	"github.com/bnema/waycore/internal/ui"
	"github.com/bnema/waycore/internal/xkb"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the compositor",
	Long: `Run claims a free $WAYLAND_DISPLAY name under $XDG_RUNTIME_DIR,
advertises the protocol core's globals, and serves clients until "jayctl
quit" or a termination signal arrives.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// compositorHandler is the single ControlHandler / jay_compositor
// backing implementation shared by the control socket jayctl dials and
// the jay_compositor singleton every Wayland client can bind.
type compositorHandler struct {
	d *display.Display
}

func (h *compositorHandler) Screenshot() (string, error) {
	return "", fmt.Errorf("screenshot capture is not implemented by this backend")
}

func (h *compositorHandler) LogFilePath() (string, error) {
	return logger.LogFilePath(), nil
}

func (h *compositorHandler) Quit() {
	h.d.Stop()
}

func (h *compositorHandler) SetLogLevel(level string) error {
	logger.SetLevel(level)
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg := config.Get()
	logger.SetLevel(cfg.LogLevel)

	d := display.New(nil)
	core := protocol.NewCore(d)
	d.SetBootstrap(core.Bootstrap())

	handler := &compositorHandler{d: d}
	core.QuitFn = handler.Quit
	core.LogFilePathFn = handler.LogFilePath
	core.SetLogLevelFn = handler.SetLogLevel
	core.ScreenshotFn = handler.Screenshot

	if err := core.RegisterCoreGlobals(); err != nil {
		return fmt.Errorf("registering core globals: %w", err)
	}

	output := scene.NewNode(d.NextNodeID(), scene.KindOutput)
	output.Output = scene.NewOutputData(scene.Rect{W: 1920, H: 1080})
	d.Tree.AddOutput(output)
	if err := core.RegisterOutput(output, "JAY-1"); err != nil {
		return fmt.Errorf("registering output: %w", err)
	}

	defaultSeat := seat.New(1, d.Tree, xkb.NewFakeKeyboardState(), nil)
	d.Seats[defaultSeat.ID] = defaultSeat
	if err := core.RegisterSeat(defaultSeat, "seat0"); err != nil {
		return fmt.Errorf("registering seat: %w", err)
	}

	name, err := d.Listen()
	if err != nil {
		return fmt.Errorf("claiming a wayland display name: %w", err)
	}
	defer d.Close()

	controlPath := display.ControlSocketPath(config.RuntimeDir(), name)
	ctrl, err := display.NewControlServer(controlPath, handler)
	if err != nil {
		return fmt.Errorf("starting control socket: %w", err)
	}
	defer ctrl.Close()
	go ctrl.Serve()

	fmt.Println(ui.HeaderStyle.Render("jay compositor"))
	fmt.Println(ui.FormatStatus(true, "listening on "+name))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		d.Stop()
	}()

	return d.Run()
}
