// =============================================================================
// Manager.io Check Printer - Printer Transports
// =============================================================================
//
// A payload reaches the printer one of two ways:
//   - CommandSender pipes it into the system spooler (lp -d <queue> -o raw),
//     which is how CUPS queues with a raw/Generic Text driver are fed.
//   - DeviceSender writes it straight to a device node (/dev/usb/lp0) or to
//     a file for inspection.
//
// Transport failures never abort preview output; the pipeline reports them
// and withholds the rename-on-success step.
//
// =============================================================================

package escp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Sender delivers a raw byte payload to the print device.
type Sender interface {
	Send(payload []byte) error
}

// =============================================================================
// SPOOLER COMMAND
// =============================================================================

// defaultSpoolTimeout bounds how long a spool submission may take. The
// spooler only queues the job, so anything slower means it is wedged.
const defaultSpoolTimeout = 30 * time.Second

// CommandSender submits payloads through a spooler command.
type CommandSender struct {
	// Command is the spooler binary. Relative names are resolved via PATH;
	// absolute paths are used as-is.
	Command string

	// Printer is the queue name passed with -d. Empty uses the system
	// default queue.
	Printer string

	// Timeout bounds one submission.
	Timeout time.Duration
}

// NewCommandSender builds a spooler transport with defaults applied.
func NewCommandSender(command, printer string, timeout time.Duration) *CommandSender {
	if command == "" {
		command = "lp"
	}
	if timeout <= 0 {
		timeout = defaultSpoolTimeout
	}
	return &CommandSender{
		Command: command,
		Printer: printer,
		Timeout: timeout,
	}
}

// Send pipes the payload into the spooler with raw passthrough requested,
// so the queue does not reflow or re-encode the ESC/P stream.
func (s *CommandSender) Send(payload []byte) error {
	binary, err := s.resolveBinary()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	args := []string{"-o", "raw"}
	if s.Printer != "" {
		args = append([]string{"-d", s.Printer}, args...)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("spool command timed out after %s", s.Timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("spool command failed: %w: %s", err, msg)
		}
		return fmt.Errorf("spool command failed: %w", err)
	}
	return nil
}

// resolveBinary locates the spooler executable. Absolute paths must exist;
// bare names go through PATH lookup.
func (s *CommandSender) resolveBinary() (string, error) {
	if filepath.IsAbs(s.Command) {
		if _, err := os.Stat(s.Command); err != nil {
			return "", fmt.Errorf("spooler binary not found at %s: %w", s.Command, err)
		}
		return s.Command, nil
	}
	path, err := exec.LookPath(s.Command)
	if err != nil {
		return "", fmt.Errorf("spooler binary %q not found in PATH: %w", s.Command, err)
	}
	return path, nil
}

// =============================================================================
// DEVICE NODE / FILE
// =============================================================================

// DeviceSender writes payloads directly to a device node or a file.
type DeviceSender struct {
	// Path is the device node or output file.
	Path string
}

// Send writes the payload in one shot.
func (s *DeviceSender) Send(payload []byte) error {
	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open device %s: %w", s.Path, err)
	}
	if _, err := f.Write(payload); err != nil {
		f.Close()
		return fmt.Errorf("failed to write to device %s: %w", s.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close device %s: %w", s.Path, err)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Sender = (*CommandSender)(nil)
	_ Sender = (*DeviceSender)(nil)
)
