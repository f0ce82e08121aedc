// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/wox-launcher/shell/lib/config"
	"github.com/wox-launcher/shell/lib/logging"
	"github.com/wox-launcher/shell/lib/process"
	"github.com/wox-launcher/shell/lib/version"
	"github.com/wox-launcher/shell/shell"
)

// defaultPort is the backend's streaming port when the launcher does
// not pass one.
const defaultPort uint16 = 34987

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	flags := pflag.NewFlagSet("wox-shell", pflag.ContinueOnError)
	configPath := flags.String("config", "", "config file (default <home>/.wox/ui.yaml)")
	logPath := flags.String("log-file", "", "log file (default <home>/.wox/log/ui.log)")
	verbose := flags.BoolP("verbose", "v", false, "log at debug level")
	showVersion := flags.Bool("version", false, "print version and exit")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}
	if *showVersion {
		fmt.Println(version.Full())
		return nil
	}

	port, pid, notes := parseLaunchArgs(flags.Args())

	configuration, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger, closer := openLogger(*logPath, configuration.LogPath, level)
	defer closer.Close()
	slog.SetDefault(logger)

	// Argument problems are recovered from, not fatal; they surface in
	// the log once the logger exists.
	for _, note := range notes {
		logger.Warn(note)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sh, err := shell.New(shell.Options{
		Config:        configuration,
		BackendPort:   port,
		BackendPID:    pid,
		ControlSocket: controlSocketPath(configuration),
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	return sh.Run(ctx)
}

// parseLaunchArgs interprets the backend-supplied positional arguments
// [port] [pid]. Both are optional and both degrade rather than abort:
// a malformed port falls back to the default, a malformed or missing
// pid disables the watchdog. The returned notes describe anything that
// degraded, for logging once the logger is up.
func parseLaunchArgs(args []string) (port uint16, pid int, notes []string) {
	port = defaultPort
	if len(args) > 0 {
		parsed, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil || parsed == 0 {
			notes = append(notes, fmt.Sprintf("unusable port argument %q, using default %d", args[0], defaultPort))
		} else {
			port = uint16(parsed)
		}
	}
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed <= 0 {
			notes = append(notes, fmt.Sprintf("unusable pid argument %q, liveness monitoring disabled", args[1]))
		} else {
			pid = parsed
		}
	}
	return port, pid, notes
}

// loadConfig reads the config file. No --config flag and no resolvable
// home directory means plain defaults.
func loadConfig(flagPath string) (config.Config, error) {
	path := flagPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = defaultPath
	}
	return config.Load(path)
}

// openLogger opens the log file, preferring the flag over the config
// file over the default path. When no path resolves the shell keeps
// running with a discard logger; a launcher UI with no home directory
// is degraded, not dead.
func openLogger(flagPath, configuredPath string, level slog.Level) (*slog.Logger, interface{ Close() error }) {
	path := flagPath
	if path == "" {
		path = configuredPath
	}
	if path == "" {
		defaultPath, err := logging.DefaultPath()
		if err != nil {
			fmt.Printf("cannot resolve log path, logging disabled: %v\n", err)
			return logging.Discard(), nopCloser{}
		}
		path = defaultPath
	}
	logger, closer, err := logging.Open(path, level)
	if err != nil {
		fmt.Printf("cannot open log file %s, logging disabled: %v\n", path, err)
		return logging.Discard(), nopCloser{}
	}
	return logger, closer
}

// controlSocketPath resolves the control socket location: config
// override, then <home>/.wox/ui.sock, then the temp dir as a last
// resort.
func controlSocketPath(configuration config.Config) string {
	if configuration.ControlSocket != "" {
		return configuration.ControlSocket
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "wox-ui.sock")
	}
	// Bind errors from a missing directory are confusing; create it
	// here and let the server report anything else.
	os.MkdirAll(filepath.Join(home, ".wox"), 0o755)
	return filepath.Join(home, ".wox", "ui.sock")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
