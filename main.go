package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bjartek/tether/pkg/config"
	"github.com/bjartek/tether/pkg/host"
	"github.com/bjartek/tether/pkg/logs"
	"github.com/bjartek/tether/pkg/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/enescakir/emoji"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	resourceDir string
	headless    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v Error: %v\n", emoji.CrossMark, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "tether [flags] [-- backend args...]",
		Short: "Run a backend server as a child process and tear it down on exit",
		Long: `tether launches a backend server (by default "node <resources>/server/index.js"),
shows its output in a terminal window and kills it when the window is closed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: tether.yaml in ., ./config, ~/.tether, /etc/tether)")
	cmd.Flags().StringVar(&opts.resourceDir, "resource-dir", "", "Directory the backend entry is resolved against")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "Log to stderr instead of opening the terminal window")

	return cmd
}

func run(ctx context.Context, opts options, args []string) error {
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.WarnLevel)

	cfg, err := config.Load(opts.configPath, bootstrap)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if opts.resourceDir != "" {
		cfg.Backend.ResourceDir = opts.resourceDir
	}

	if opts.headless || !cfg.UI.Enabled {
		return runHeadless(ctx, cfg, args)
	}
	return runWindow(cfg, args)
}

func runHeadless(ctx context.Context, cfg *config.Config, args []string) error {
	logger, closer, err := logs.New(cfg.Logging, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := host.New(cfg, logger)
	if err := h.Start(args); err != nil {
		return err
	}
	logger.Info().Msgf("%v Backend running, press ctrl+c to stop", emoji.Rocket)

	select {
	case <-ctx.Done():
		logger.Info().Msgf("%v Shutting down", emoji.StopSign)
	case <-h.Exited():
		logger.Warn().Msgf("%v Backend exited, shutting down", emoji.Warning)
	}
	h.Shutdown()
	return nil
}

func runWindow(cfg *config.Config, args []string) error {
	p := tea.NewProgram(
		ui.NewModel(cfg.UI),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Logging straight to the terminal would draw over the window.
	logger, closer, err := logs.New(cfg.Logging, logs.NewLogWriter(p))
	if err != nil {
		return err
	}
	defer closer.Close()

	h := host.New(cfg, logger, host.WithProgram(p))

	// Program.Send blocks until the program runs, so the backend is started from a
	// goroutine once Run has taken over. Quitting while it launches is a clean exit:
	// Host.Start kills the new process and returns nil.
	started := make(chan error, 1)
	go func() {
		err := h.Start(args)
		switch {
		case err != nil:
			p.Quit()
		case h.Supervisor().Running():
			logger.Info().Msgf("%v Backend running", emoji.Rocket)
		}
		started <- err
	}()

	_, runErr := p.Run()

	h.Shutdown()
	startErr := <-started

	if startErr != nil {
		return startErr
	}
	if runErr != nil {
		return errors.Wrap(runErr, "run terminal window")
	}
	fmt.Printf("%v Backend stopped\n", emoji.StopSign)
	return nil
}
