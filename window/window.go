// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package window

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/wox-launcher/shell/surface"
)

// Kind selects the windowing variant at composition time.
type Kind string

const (
	// Standard is a regular application window with no presentation
	// tweaks.
	Standard Kind = "standard"

	// Panel is a launcher-style overlay: raised above the menu bar
	// level and allowed over fullscreen applications, following the
	// active space.
	Panel Kind = "panel"
)

// DefaultKind returns the platform's preferred variant: Panel on
// darwin (launcher windows float over everything there), Standard
// elsewhere.
func DefaultKind() Kind {
	if runtime.GOOS == "darwin" {
		return Panel
	}
	return Standard
}

// ParseKind validates a kind string from configuration. Empty means
// platform default.
func ParseKind(value string) (Kind, error) {
	switch value {
	case "":
		return DefaultKind(), nil
	case string(Standard):
		return Standard, nil
	case string(Panel):
		return Panel, nil
	default:
		return "", fmt.Errorf("unknown window kind %q", value)
	}
}

// Window is the shell's handle on the single UI surface and its
// presentation. The toolkit behind it is an external collaborator:
// Prepare applies presentation tweaks through opaque hook calls, and
// Surface exposes the window's message channels.
type Window interface {
	// Kind identifies the variant.
	Kind() Kind

	// Prepare applies the variant's presentation tweaks. Called once,
	// before the bridge starts relaying. A Prepare failure degrades
	// presentation only — the window still works as a plain surface.
	Prepare() error

	// Surface returns the window's messaging surface. Borrowed, valid
	// for the window's lifetime.
	Surface() surface.Surface
}

// PanelHooks are the toolkit calls a Panel window makes during
// Prepare. They are opaque to the shell; the real implementations live
// in the platform toolkit binding, and NoopHooks stands in everywhere
// else (tests, standalone development, non-darwin builds).
type PanelHooks interface {
	// RaiseAboveMainMenu sets the panel's window level above the main
	// menu window level.
	RaiseAboveMainMenu() error

	// JoinActiveSpace marks the panel transient and moves it to the
	// active space, so it can appear over fullscreen applications.
	JoinActiveSpace() error
}

// NoopHooks is a PanelHooks implementation that does nothing.
type NoopHooks struct{}

func (NoopHooks) RaiseAboveMainMenu() error { return nil }
func (NoopHooks) JoinActiveSpace() error    { return nil }

// Options configures window construction.
type Options struct {
	// Kind selects the variant. Zero value means DefaultKind().
	Kind Kind

	// Hooks supplies the panel toolkit calls. Nil means NoopHooks.
	// Ignored for Standard windows.
	Hooks PanelHooks

	// Buffer is the surface's per-direction message buffer. Zero
	// means a sensible default.
	Buffer int

	// Logger receives window lifecycle logs. Nil means slog.Default().
	Logger *slog.Logger
}

const defaultBuffer = 64

// New constructs the window variant for the given options. All
// platform-specific behavior is confined here — call sites never
// branch on the platform.
func New(options Options) Window {
	if options.Kind == "" {
		options.Kind = DefaultKind()
	}
	if options.Hooks == nil {
		options.Hooks = NoopHooks{}
	}
	if options.Buffer <= 0 {
		options.Buffer = defaultBuffer
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	channel := surface.NewChannel(options.Buffer)
	switch options.Kind {
	case Panel:
		return &panelWindow{surface: channel, hooks: options.Hooks, logger: options.Logger}
	default:
		return &standardWindow{surface: channel}
	}
}

// standardWindow has no presentation tweaks.
type standardWindow struct {
	surface *surface.Channel
}

func (w *standardWindow) Kind() Kind               { return Standard }
func (w *standardWindow) Prepare() error           { return nil }
func (w *standardWindow) Surface() surface.Surface { return w.surface }

// panelWindow applies overlay presentation through its hooks.
type panelWindow struct {
	surface *surface.Channel
	hooks   PanelHooks
	logger  *slog.Logger
}

func (w *panelWindow) Kind() Kind { return Panel }

func (w *panelWindow) Prepare() error {
	if err := w.hooks.RaiseAboveMainMenu(); err != nil {
		return fmt.Errorf("raising panel window level: %w", err)
	}
	if err := w.hooks.JoinActiveSpace(); err != nil {
		return fmt.Errorf("joining active space: %w", err)
	}
	w.logger.Info("panel presentation applied")
	return nil
}

func (w *panelWindow) Surface() surface.Surface { return w.surface }
