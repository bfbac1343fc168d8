//go:build e2e && unix

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB of scrollback
var binPath = "selectmenu_e2e"

// Key constants for better readability
const (
	KeyEnter = "\r"
	KeyTab   = "\t"
	KeyEsc   = "\x1b"
	KeyCtrlC = "\x03"
	KeySpace = " "
	KeyDown  = "j"
	KeyUp    = "k"
	KeyQuit  = "q"
)

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`, // carriage returns
)

// MenuTest drives a selectmenu process attached to a PTY. The menu draws on
// the PTY; stdout is captured separately because it carries the result.
type MenuTest struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string
	stdout    bytes.Buffer
	exited    chan error

	// Ring buffer for continuous output capture
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewMenuTest creates a driver with its own scratch directory
func NewMenuTest(t *testing.T) *MenuTest {
	return &MenuTest{
		t:         t,
		buf:       make([]byte, ringSize),
		workspace: t.TempDir(),
	}
}

// Start launches selectmenu with args in a PTY. Config and log files live in
// the test's scratch directory.
func (mt *MenuTest) Start(args ...string) error {
	base := []string{
		"--config", filepath.Join(mt.workspace, "config.toml"),
		"--log", filepath.Join(mt.workspace, "selectmenu.log"),
	}
	mt.cmd = exec.Command(binPath, append(base, args...)...)
	mt.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"HOME="+mt.workspace, // isolate $HOME
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	if err := pty.Setsize(ptyFile, &pty.Winsize{Rows: 40, Cols: 120}); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to size pty: %w", err)
	}

	mt.pty = ptyFile
	mt.tty = tty
	mt.cmd.Stdin = tty
	mt.cmd.Stderr = tty
	mt.cmd.Stdout = &mt.stdout
	// The pager opens /dev/tty, so the PTY must be the controlling terminal
	mt.cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}

	if err := mt.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	mt.exited = make(chan error, 1)
	go func() { mt.exited <- mt.cmd.Wait() }()
	mt.startReader()

	return nil
}

// startReader copies PTY output into the ring buffer until the PTY closes
func (mt *MenuTest) startReader() {
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := mt.pty.Read(buf)
			if n > 0 {
				mt.mu.Lock()
				for i := 0; i < n; i++ {
					mt.buf[mt.head] = buf[i]
					mt.head = (mt.head + 1) % ringSize
					if mt.head == 0 {
						mt.full = true
					}
				}
				mt.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
}

// SendKeys sends keystrokes to the application
func (mt *MenuTest) SendKeys(keys ...string) error {
	mt.t.Helper()
	for _, k := range keys {
		if _, err := mt.pty.Write([]byte(k)); err != nil {
			return err
		}
		// Lone escapes are only recognised when they arrive on their own
		time.Sleep(30 * time.Millisecond)
	}
	return nil
}

// SeePlain waits for specific plain text to appear (normalized output)
func (mt *MenuTest) SeePlain(text string) bool {
	mt.t.Helper()
	return mt.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, 3*time.Second)
}

// WaitFor waits for a predicate to be true in the output
func (mt *MenuTest) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	mt.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(mt.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond) // simple, reliable polling; tests only
	}
}

// Wait waits for the process to exit and returns its exit code
func (mt *MenuTest) Wait(timeout time.Duration) (int, error) {
	mt.t.Helper()
	select {
	case err := <-mt.exited:
		if err == nil {
			return 0, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	case <-time.After(timeout):
		mt.DumpTailOnFail("exit-timeout", 4096)
		return -1, fmt.Errorf("process did not exit within %s", timeout)
	}
}

// Stdout returns what the process printed on stdout. Only meaningful after Wait.
func (mt *MenuTest) Stdout() string {
	return mt.stdout.String()
}

// Snapshot returns the current contents of the ring buffer (thread-safe)
func (mt *MenuTest) Snapshot() string {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if !mt.full {
		return string(mt.buf[:mt.head])
	}
	out := make([]byte, ringSize)
	copy(out, mt.buf[mt.head:])
	copy(out[ringSize-mt.head:], mt.buf[:mt.head])
	return string(out)
}

// DumpTailOnFail saves the last n bytes of normalized output for debugging
func (mt *MenuTest) DumpTailOnFail(name string, n int) {
	s := ansiRe.ReplaceAllString(mt.Snapshot(), "")
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(mt.workspace, name+".txt")
	_ = os.WriteFile(p, []byte(s), 0644)
	mt.t.Logf("Saved tail to %s", p)
}

// Cleanup closes the PTY and terminates the application
func (mt *MenuTest) Cleanup() {
	// Close PTY first to deliver SIGHUP to child process
	if mt.pty != nil {
		_ = mt.pty.Close()
		mt.pty = nil
	}
	if mt.tty != nil {
		_ = mt.tty.Close()
		mt.tty = nil
	}
	if mt.cmd != nil && mt.cmd.Process != nil {
		_ = mt.cmd.Process.Kill()
		mt.cmd = nil
	}
}
