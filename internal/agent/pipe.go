package agent

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// PipeAgent is an in-memory agent. The engine side is the Channel; the
// other side, a Peer, is driven by a test or a built-in bot.
type PipeAgent struct {
	*line
	peer *Peer
}

// Peer is the agent's end of a pipe.
type Peer struct {
	agent  *PipeAgent
	mu     sync.Mutex
	queue  []string
	notify chan struct{}
	closed chan struct{}
	once   sync.Once
}

// NewPipe creates a connected agent and peer.
func NewPipe(name string, cfg Config) (*PipeAgent, *Peer) {
	peer := &Peer{
		notify: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
	a := &PipeAgent{peer: peer}
	logger := cfg.Logger.With().Str("component", "agent").Str("agent", name).Logger()
	a.line = newLine(cfg, logger, peer.deliver, peer.close)
	peer.agent = a
	return a, peer
}

func (p *Peer) deliver(text string) error {
	select {
	case <-p.closed:
		return ErrClosed
	default:
	}
	p.mu.Lock()
	p.queue = append(p.queue, text)
	p.mu.Unlock()
	select {
	case p.notify <- struct{}{}:
	default:
	}
	return nil
}

func (p *Peer) close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

// Recv returns the next line sent by the engine. It returns ErrClosed once
// the pipe is closed and drained.
func (p *Peer) Recv(ctx context.Context) (string, error) {
	for {
		p.mu.Lock()
		if len(p.queue) > 0 {
			text := p.queue[0]
			p.queue = p.queue[1:]
			p.mu.Unlock()
			return text, nil
		}
		p.mu.Unlock()

		select {
		case <-p.notify:
		case <-p.closed:
			p.mu.Lock()
			empty := len(p.queue) == 0
			p.mu.Unlock()
			if empty {
				return "", ErrClosed
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Reply writes a line as the agent.
func (p *Peer) Reply(text string) {
	p.agent.accept(text)
}

// Hangup ends the agent's output, as if its process had exited.
func (p *Peer) Hangup() {
	p.agent.readerDone()
}

// Closed is closed when the engine releases the agent.
func (p *Peer) Closed() <-chan struct{} {
	return p.closed
}

// Logger returns the agent's logger for use by whatever drives the peer.
func (p *Peer) Logger() zerolog.Logger {
	return p.agent.logger
}
