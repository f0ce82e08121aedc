// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"bufio"
	"context"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/wox-launcher/shell/control"
	"github.com/wox-launcher/shell/lib/config"
	"github.com/wox-launcher/shell/lib/logging"
	"github.com/wox-launcher/shell/lib/testutil"
	"github.com/wox-launcher/shell/surface"
)

// fakeBackend listens on an ephemeral TCP port and exposes the lines
// it receives plus a way to push lines at the shell.
type fakeBackend struct {
	port     uint16
	received chan string
	conn     chan net.Conn
}

func startFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	backend := &fakeBackend{
		port:     uint16(listener.Addr().(*net.TCPAddr).Port),
		received: make(chan string, 16),
		conn:     make(chan net.Conn, 1),
	}
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		backend.conn <- conn
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			backend.received <- scanner.Text()
		}
	}()
	return backend
}

func (b *fakeBackend) connection(t *testing.T) net.Conn {
	t.Helper()
	return testutil.RequireReceive(t, b.conn, 5*time.Second, "backend accept")
}

func testOptions(t *testing.T, backend *fakeBackend) Options {
	t.Helper()
	return Options{
		BackendPort:   backend.port,
		ControlSocket: filepath.Join(testutil.SocketDir(t), "ui.sock"),
		Logger:        logging.Discard(),
	}
}

func invoke(t *testing.T, socketPath string, request control.Request) control.Response {
	t.Helper()
	var response control.Response
	var err error
	// The control socket binds asynchronously relative to the test's
	// view of Run; retry briefly.
	deadline := time.Now().Add(5 * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		response, err = control.Invoke(ctx, socketPath, request)
		cancel()
		if err == nil {
			return response
		}
		if time.Now().After(deadline) {
			t.Fatalf("Invoke(%s): %v", request.Method, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// runShell starts Run on its own goroutine and returns the error
// channel plus the shell.
func runShell(t *testing.T, ctx context.Context, options Options) (*Shell, chan error) {
	t.Helper()
	sh, err := New(options)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	errs := make(chan error, 1)
	go func() { errs <- sh.Run(ctx) }()
	return sh, errs
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Options{ControlSocket: "/tmp/x.sock"}); err == nil {
		t.Fatal("New accepted a zero port")
	}
	if _, err := New(Options{BackendPort: 34987}); err == nil {
		t.Fatal("New accepted an empty control socket")
	}
	bad := config.Default()
	bad.Window = "floating"
	if _, err := New(Options{BackendPort: 34987, ControlSocket: "/tmp/x.sock", Config: bad}); err == nil {
		t.Fatal("New accepted an unknown window kind")
	}
}

func TestGetServerPort(t *testing.T) {
	backend := startFakeBackend(t)
	options := testOptions(t, backend)

	ctx, cancel := context.WithCancel(context.Background())
	_, errs := runShell(t, ctx, options)

	response := invoke(t, options.ControlSocket, control.Request{Method: "get_server_port"})
	if !response.OK {
		t.Fatalf("get_server_port failed: %s", response.Error)
	}
	if response.Data != strconv.Itoa(int(backend.port)) {
		t.Fatalf("Data = %q, want %d", response.Data, backend.port)
	}

	cancel()
	if err := testutil.RequireReceive(t, errs, 5*time.Second, "Run return"); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestLogUIWritesLogFile(t *testing.T) {
	backend := startFakeBackend(t)
	options := testOptions(t, backend)

	logPath := filepath.Join(t.TempDir(), "ui.log")
	logger, closer, err := logging.Open(logPath, slog.LevelInfo)
	if err != nil {
		t.Fatalf("logging.Open: %v", err)
	}
	defer closer.Close()
	options.Logger = logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runShell(t, ctx, options)

	response := invoke(t, options.ControlSocket, control.Request{
		Method: "log_ui",
		Params: map[string]string{"msg": "query box focused"},
	})
	if !response.OK {
		t.Fatalf("log_ui failed: %s", response.Error)
	}

	contents, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(contents), "UI: query box focused") {
		t.Fatalf("log file missing UI line:\n%s", contents)
	}
}

func TestStatusReportsVersionAndDigest(t *testing.T) {
	backend := startFakeBackend(t)
	options := testOptions(t, backend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runShell(t, ctx, options)

	response := invoke(t, options.ControlSocket, control.Request{Method: "status"})
	if !response.OK {
		t.Fatalf("status failed: %s", response.Error)
	}
	if !strings.Contains(response.Data, "sha256:") {
		t.Fatalf("status data missing digest: %q", response.Data)
	}
}

func TestBridgeRelaysBothDirections(t *testing.T) {
	backend := startFakeBackend(t)
	options := testOptions(t, backend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sh, _ := runShell(t, ctx, options)

	conn := backend.connection(t)
	channel := sh.Window().Surface().(*surface.Channel)

	if _, err := conn.Write([]byte("{\"query\":\"results\"}\n")); err != nil {
		t.Fatalf("backend write: %v", err)
	}
	inbound := testutil.RequireReceive(t, channel.Incoming(), 5*time.Second, "inbound relay")
	if string(inbound) != "{\"query\":\"results\"}" {
		t.Fatalf("inbound = %q", inbound)
	}

	channel.Emit([]byte("{\"method\":\"query\"}"))
	outbound := testutil.RequireReceive(t, backend.received, 5*time.Second, "outbound relay")
	if outbound != "{\"method\":\"query\"}" {
		t.Fatalf("outbound = %q", outbound)
	}
}

func TestRunFailsWhenBackendNeverListens(t *testing.T) {
	cfg := config.Default()
	cfg.DialAttempts = 2
	cfg.DialBackoff = 10 * time.Millisecond
	cfg.DialBackoffCap = 20 * time.Millisecond

	// Grab a port nothing listens on.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	port := uint16(listener.Addr().(*net.TCPAddr).Port)
	listener.Close()

	sh, err := New(Options{
		Config:        cfg,
		BackendPort:   port,
		ControlSocket: filepath.Join(testutil.SocketDir(t), "ui.sock"),
		Logger:        logging.Discard(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sh.Run(ctx); err == nil {
		t.Fatal("Run succeeded with no backend listening")
	}
}

func TestRunExitsCleanlyOnCancelDuringDial(t *testing.T) {
	cfg := config.Default()
	cfg.DialAttempts = 50
	cfg.DialBackoff = 100 * time.Millisecond
	cfg.DialBackoffCap = 100 * time.Millisecond

	// Grab a port nothing listens on, so Run sits in the dial retry
	// window when the cancellation lands.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	port := uint16(listener.Addr().(*net.TCPAddr).Port)
	listener.Close()

	sh, err := New(Options{
		Config:        cfg,
		BackendPort:   port,
		ControlSocket: filepath.Join(testutil.SocketDir(t), "ui.sock"),
		Logger:        logging.Discard(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- sh.Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	if err := testutil.RequireReceive(t, errs, 5*time.Second, "Run return after cancel"); err != nil {
		t.Fatalf("Run returned %v after cancellation; want nil", err)
	}
}

func TestRunExitsWhenBackendDies(t *testing.T) {
	backend := startFakeBackend(t)
	options := testOptions(t, backend)

	child := exec.Command("sleep", "300")
	if err := child.Start(); err != nil {
		t.Fatalf("starting child: %v", err)
	}
	options.BackendPID = child.Process.Pid
	cfg := config.Default()
	cfg.PollInterval = 20 * time.Millisecond
	options.Config = cfg

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, errs := runShell(t, ctx, options)

	// Let at least one probe see the child alive, then reap it.
	time.Sleep(50 * time.Millisecond)
	child.Process.Kill()
	child.Wait()

	if err := testutil.RequireReceive(t, errs, 5*time.Second, "Run return after backend death"); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
