package board

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultWriteTimeout bounds a single Slot.Save call.
const DefaultWriteTimeout = 10 * time.Second

// persister saves snapshots on a single goroutine. It holds at most one
// pending snapshot: submitting a new one replaces whatever hasn't been
// written yet, so an older snapshot can never land after a newer one.
type persister struct {
	slot    Slot
	logger  *log.Logger
	timeout time.Duration

	mu         sync.Mutex
	seq        uint64
	pending    []Board
	pendingSeq uint64
	hasPending bool
	doneSeq    uint64
	lastErr    error
	failed     []Board
	hasFailed  bool
	changed    chan struct{}

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newPersister(slot Slot, logger *log.Logger, timeout time.Duration) *persister {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &persister{
		slot:    slot,
		logger:  logger,
		timeout: timeout,
		changed: make(chan struct{}),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// submit queues boards for writing. The slice must not be modified afterwards.
func (p *persister) submit(boards []Board) {
	p.mu.Lock()
	p.seq++
	if p.hasPending {
		p.logger.WithField("boards", len(p.pending)).Debug("superseding unwritten snapshot")
	}
	p.pending = boards
	p.pendingSeq = p.seq
	p.hasPending = true
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.stop:
			if !p.drain() {
				p.retryFailed()
			}
			return
		}
	}
}

// drain writes pending snapshots until none is left. It reports whether
// anything was written.
func (p *persister) drain() bool {
	wrote := false
	for {
		p.mu.Lock()
		if !p.hasPending {
			p.mu.Unlock()
			return wrote
		}
		boards, seq := p.pending, p.pendingSeq
		p.pending, p.hasPending = nil, false
		p.mu.Unlock()

		err := p.write(boards)
		wrote = true

		p.mu.Lock()
		p.doneSeq = seq
		p.lastErr = err
		p.failed, p.hasFailed = nil, false
		if err != nil {
			p.failed, p.hasFailed = boards, true
		}
		close(p.changed)
		p.changed = make(chan struct{})
		p.mu.Unlock()
	}
}

func (p *persister) write(boards []Board) error {
	data, err := Encode(boards)
	if err != nil {
		p.logger.WithError(err).Error("encode boards failed")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.slot.Save(ctx, data); err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"boards": len(boards),
			"bytes":  len(data),
		}).Error("persist boards failed; will retry on next change or close")
		return err
	}

	p.logger.WithFields(log.Fields{
		"boards": len(boards),
		"bytes":  len(data),
	}).Debug("persisted boards")
	return nil
}

// retryFailed writes the latest snapshot once more if its write failed.
func (p *persister) retryFailed() {
	p.mu.Lock()
	if !p.hasFailed || p.hasPending {
		p.mu.Unlock()
		return
	}
	p.logger.WithField("boards", len(p.failed)).Debug("retrying failed write before shutdown")
	p.pending, p.pendingSeq, p.hasPending = p.failed, p.doneSeq, true
	p.mu.Unlock()

	p.drain()
}

// flush waits until everything submitted before the call has been written
// or superseded, and returns the error of the latest write.
func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.seq
	p.mu.Unlock()

	for {
		p.mu.Lock()
		if p.doneSeq >= target {
			err := p.lastErr
			p.mu.Unlock()
			return err
		}
		changed := p.changed
		p.mu.Unlock()

		select {
		case <-changed:
		case <-p.done:
			p.mu.Lock()
			err := p.lastErr
			if p.doneSeq < target && err == nil {
				err = ErrStoreClosed
			}
			p.mu.Unlock()
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// close writes any pending snapshot, retries a snapshot whose write
// failed, and stops the writer goroutine.
func (p *persister) close(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.stop) })

	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
