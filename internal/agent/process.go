package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ProcessAgent plays through a child process: lines go to its stdin and
// its stdout lines are the responses. Stderr is logged.
type ProcessAgent struct {
	*line

	ID      string
	Command string
	Args    []string
	Env     map[string]string

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	cancel  context.CancelFunc
	writeMu sync.Mutex
	done    chan struct{}
	exitErr error
	started time.Time
}

// StartProcess launches command and returns an agent reading its output.
func StartProcess(ctx context.Context, command string, args []string, env map[string]string, cfg Config) (*ProcessAgent, error) {
	procCtx, cancel := context.WithCancel(ctx)
	id := uuid.NewString()[:8]
	p := &ProcessAgent{
		ID:      id,
		Command: command,
		Args:    args,
		Env:     env,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	logger := cfg.Logger.With().Str("component", "agent").Str("process_id", id).Logger()
	p.line = newLine(cfg, logger, p.writeLine, p.stop)

	p.cmd = exec.CommandContext(procCtx, command, args...)
	p.cmd.Env = os.Environ()
	for k, v := range env {
		p.cmd.Env = append(p.cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	stdin, err := p.cmd.StdinPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stdout, err := p.cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := p.cmd.StderrPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	p.stdin = stdin

	if err := p.cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start process: %w", err)
	}

	p.started = cfg.Clock.Now()
	p.logger.Info().
		Str("command", command).
		Strs("args", args).
		Msg("Process started")

	go p.readResponses(stdout)
	go p.readStderr(stderr)
	go p.monitor()
	return p, nil
}

func (p *ProcessAgent) writeLine(text string) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	select {
	case <-p.done:
		return ErrClosed
	default:
	}
	if _, err := io.WriteString(p.stdin, text+"\n"); err != nil {
		return fmt.Errorf("failed to write to process: %w", err)
	}
	return nil
}

func (p *ProcessAgent) readResponses(stdout io.Reader) {
	defer p.readerDone()
	err := readLines(stdout, maxBuffered, p.accept, func(n int) {
		p.logger.Warn().Int("bytes", n).Msg("Dropped over-long line from agent")
	})
	if err != nil && !errors.Is(err, os.ErrClosed) {
		p.logger.Debug().Err(err).Msg("Stopped reading agent output")
	}
}

func (p *ProcessAgent) readStderr(stderr io.Reader) {
	_ = readLines(stderr, maxBuffered, func(text string) {
		if text != "" && !strings.Contains(text, "VM warning") {
			p.logger.Debug().Str("stream", "stderr").Msg(text)
		}
	}, func(int) {})
}

// readLines calls accept for every line in r until EOF. Lines longer than
// limit are skipped whole and reported to drop with their length.
func readLines(r io.Reader, limit int, accept func(string), drop func(int)) error {
	reader := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	size := 0
	for {
		chunk, more, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		size += len(chunk)
		if size <= limit {
			line = append(line, chunk...)
		}
		if more {
			continue
		}
		if size <= limit {
			accept(string(line))
		} else {
			drop(size)
		}
		line, size = line[:0], 0
	}
}

func (p *ProcessAgent) monitor() {
	defer close(p.done)
	err := p.cmd.Wait()
	p.exitErr = err

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		p.logger.Info().Msg("Process exited successfully")
	case errors.As(err, &exitErr) && !exitErr.Exited():
		p.logger.Info().Str("signal", exitErr.String()).Msg("Process terminated by signal")
	default:
		p.logger.Error().Err(err).Msg("Process exited with error")
	}
}

// stop closes stdin, interrupts the process and kills it if it has not
// exited within a second.
func (p *ProcessAgent) stop() error {
	defer p.cancel()

	p.writeMu.Lock()
	_ = p.stdin.Close()
	p.writeMu.Unlock()

	select {
	case <-p.done:
		return nil
	default:
	}

	if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
		select {
		case <-p.done:
			return nil
		default:
		}
	}

	select {
	case <-p.done:
		return nil
	case <-time.After(time.Second):
		p.logger.Debug().Msg("Force killing process")
		if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("failed to kill process: %w", err)
		}
		<-p.done
	}
	return nil
}

// Wait blocks until the process exits and returns its exit error.
func (p *ProcessAgent) Wait() error {
	<-p.done
	return p.exitErr
}

// Alive reports whether the process is still running.
func (p *ProcessAgent) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}
