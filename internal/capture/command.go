package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// stopGrace is how long a capture program gets to flush after an interrupt
// before it is killed.
const stopGrace = 3 * time.Second

// DefaultCaptureCommand returns an ffmpeg invocation that records the
// default microphone as MP3 on stdout.
func DefaultCaptureCommand() []string {
	var input []string
	switch runtime.GOOS {
	case "darwin":
		input = []string{"-f", "avfoundation", "-i", ":0"}
	case "windows":
		input = []string{"-f", "dshow", "-i", "audio=default"}
	default:
		input = []string{"-f", "pulse", "-i", "default"}
	}
	args := []string{"ffmpeg", "-hide_banner", "-loglevel", "error"}
	args = append(args, input...)
	return append(args, "-ac", "1", "-f", "mp3", "-")
}

// DefaultPlaybackCommand returns an ffplay invocation that plays stdin
// without a window and exits at the end of the clip.
func DefaultPlaybackCommand() []string {
	return []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "error", "-i", "-"}
}

// CommandSource captures audio from an external program's stdout.
type CommandSource struct {
	Args []string
}

// NewCommandSource creates a source running args. Empty args select
// DefaultCaptureCommand.
func NewCommandSource(args []string) *CommandSource {
	if len(args) == 0 {
		args = DefaultCaptureCommand()
	}
	return &CommandSource{Args: args}
}

// Open starts the capture program.
func (s *CommandSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if len(s.Args) == 0 {
		return nil, errors.New("empty capture command")
	}
	path, err := exec.LookPath(s.Args[0])
	if err != nil {
		return nil, fmt.Errorf("capture program: %w", err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("capture pipe: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, s.Args[1:]...)
	cmd.Stdout = w
	cmd.Cancel = func() error {
		return interrupt(cmd.Process)
	}
	cmd.WaitDelay = stopGrace
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		_ = r.Close()
		_ = w.Close()
		return nil, fmt.Errorf("start %s: %w", s.Args[0], err)
	}
	// the child holds its own copy of the write end
	_ = w.Close()

	stream := &commandStream{cmd: cmd, r: r, stderr: &stderr, exited: make(chan struct{})}
	go func() {
		stream.waitErr = cmd.Wait()
		close(stream.exited)
	}()
	return stream, nil
}

// commandStream reads a capture program's stdout. Close asks the program
// to finish, so the tail of the encoded audio is still flushed to the pipe.
type commandStream struct {
	cmd    *exec.Cmd
	r      *os.File
	stderr *bytes.Buffer

	exited  chan struct{}
	waitErr error

	closeReader sync.Once
}

func (s *commandStream) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if errors.Is(err, io.EOF) {
		s.closeReader.Do(func() { _ = s.r.Close() })
	}
	return n, err
}

func (s *commandStream) Close() error {
	interrupted := false
	select {
	case <-s.exited:
	default:
		interrupted = true
		if err := interrupt(s.cmd.Process); err != nil {
			_ = s.cmd.Process.Kill()
		}
		select {
		case <-s.exited:
		case <-time.After(stopGrace):
			_ = s.cmd.Process.Kill()
			<-s.exited
		}
	}

	var exitErr *exec.ExitError
	switch {
	case s.waitErr == nil:
		return nil
	case errors.As(s.waitErr, &exitErr) && interrupted:
		return nil
	case s.stderr.Len() > 0:
		return fmt.Errorf("%w: %s", s.waitErr, strings.TrimSpace(s.stderr.String()))
	default:
		return s.waitErr
	}
}

// CommandPlayer plays clips by piping them into an external program.
type CommandPlayer struct {
	Args []string
}

// NewCommandPlayer creates a player running args. Empty args select
// DefaultPlaybackCommand.
func NewCommandPlayer(args []string) *CommandPlayer {
	if len(args) == 0 {
		args = DefaultPlaybackCommand()
	}
	return &CommandPlayer{Args: args}
}

// Play runs the playback program with payload on stdin and waits for it.
func (p *CommandPlayer) Play(ctx context.Context, payload []byte, _ string) error {
	if len(p.Args) == 0 {
		return errors.New("empty playback command")
	}

	cmd := exec.CommandContext(ctx, p.Args[0], p.Args[1:]...)
	cmd.Stdin = bytes.NewReader(payload)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", p.Args[0], err, msg)
		}
		return fmt.Errorf("%s: %w", p.Args[0], err)
	}
	return nil
}

func interrupt(p *os.Process) error {
	if runtime.GOOS == "windows" {
		return p.Kill()
	}
	return p.Signal(os.Interrupt)
}
