// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wox-launcher/shell/bridge"
	"github.com/wox-launcher/shell/control"
	"github.com/wox-launcher/shell/lib/binhash"
	"github.com/wox-launcher/shell/lib/clock"
	"github.com/wox-launcher/shell/lib/config"
	"github.com/wox-launcher/shell/lib/version"
	"github.com/wox-launcher/shell/watchdog"
	"github.com/wox-launcher/shell/window"
)

// Options configures the shell. The cmd layer fills these from flags,
// positional arguments, and the config file.
type Options struct {
	// Config carries the tunables (poll interval, dial retry bounds,
	// window kind). Zero value means config.Default().
	Config config.Config

	// BackendPort is the backend's streaming port on localhost.
	BackendPort uint16

	// BackendPID is the backend process to monitor. Zero means no
	// watchdog (standalone development).
	BackendPID int

	// ControlSocket is the Unix socket path for UI-invokable
	// operations. Required.
	ControlSocket string

	// Hooks supplies the panel toolkit calls for overlay windows.
	// Nil means no-ops.
	Hooks window.PanelHooks

	// Logger receives all shell logs. Nil means slog.Default().
	Logger *slog.Logger

	// Clock drives the watchdog and the dial backoff. Nil means
	// clock.Real().
	Clock clock.Clock
}

// Shell composes the window, the backend watchdog, the transport
// bridge, and the control server into one supervised process.
type Shell struct {
	options Options
	window  window.Window
}

// New validates the options and constructs the window. The window
// exists from here on but applies no presentation until Run.
func New(options Options) (*Shell, error) {
	if options.BackendPort == 0 {
		return nil, fmt.Errorf("shell: BackendPort is required")
	}
	if options.ControlSocket == "" {
		return nil, fmt.Errorf("shell: ControlSocket is required")
	}
	if options.Config == (config.Config{}) {
		options.Config = config.Default()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	kind, err := window.ParseKind(options.Config.Window)
	if err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}
	win := window.New(window.Options{
		Kind:   kind,
		Hooks:  options.Hooks,
		Logger: options.Logger,
	})

	return &Shell{options: options, window: win}, nil
}

// Window returns the composed window. Tests reach the surface through
// it; the toolkit binding attaches its event loop to it.
func (s *Shell) Window() window.Window {
	return s.window
}

// Run starts every component and blocks until the backend dies, ctx is
// cancelled, or startup fails.
//
// A nil return means an orderly shutdown (backend gone or signal):
// the process should exit 0. A non-nil return means the shell never
// became operational: the process should exit 1.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	logger := s.options.Logger

	// The watchdog starts before anything else so a backend that died
	// during our own startup is caught even if the bridge dial then
	// hangs in its retry loop.
	backendGone := make(chan struct{})
	dog := &watchdog.Watchdog{
		PID:      s.options.BackendPID,
		Interval: s.options.Config.PollInterval,
		Terminate: func() {
			close(backendGone)
			cancel()
		},
		Logger: logger,
		Clock:  s.options.Clock,
	}
	go dog.Run(ctx)

	// Presentation tweaks are cosmetic. A failed Prepare leaves a
	// plain window, not a dead shell.
	if err := s.window.Prepare(); err != nil {
		logger.Warn("window presentation degraded", "kind", s.window.Kind(), "error", err)
	}

	controlServer := &control.Server{
		SocketPath: s.options.ControlSocket,
		Logger:     logger,
	}
	s.registerOperations(controlServer, logger)
	if err := controlServer.Start(ctx); err != nil {
		return err
	}

	transport := &bridge.Bridge{
		Addr:           fmt.Sprintf("localhost:%d", s.options.BackendPort),
		Surface:        s.window.Surface(),
		Logger:         logger,
		Clock:          s.options.Clock,
		DialAttempts:   s.options.Config.DialAttempts,
		DialBackoff:    s.options.Config.DialBackoff,
		DialBackoffCap: s.options.Config.DialBackoffCap,
	}
	if err := transport.Start(ctx); err != nil {
		// The watchdog may have fired mid-dial, or a shutdown signal
		// may have landed during the retry window. Both are orderly
		// shutdowns, not startup failures.
		if ctx.Err() != nil {
			controlServer.Wait()
			return nil
		}
		return err
	}

	logger.Info("UI shell running",
		"port", s.options.BackendPort,
		"pid", s.options.BackendPID,
		"window", s.window.Kind(),
	)

	select {
	case <-backendGone:
	case <-ctx.Done():
	}
	cancel()
	transport.Wait()
	controlServer.Wait()
	return nil
}

// registerOperations installs the UI-invokable control operations.
func (s *Shell) registerOperations(server *control.Server, logger *slog.Logger) {
	port := fmt.Sprintf("%d", s.options.BackendPort)
	server.Register("get_server_port", func(map[string]string) (string, error) {
		return port, nil
	})
	server.Register("log_ui", func(params map[string]string) (string, error) {
		logger.Info("UI: " + params["msg"])
		return "", nil
	})
	server.Register("status", func(map[string]string) (string, error) {
		digest, err := binhash.Self()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s sha256:%s", version.Info(), digest), nil
	})
}
