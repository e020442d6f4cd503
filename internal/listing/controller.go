package listing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/opsview/internal/logging"
	"github.com/five82/opsview/internal/operations"
	"github.com/five82/opsview/internal/search"
	"github.com/five82/opsview/internal/status"
)

var (
	// ErrNotActivated is returned when the search term is set before Activate.
	ErrNotActivated = errors.New("listing: controller not activated")
	// ErrDisposed is returned by calls made after Dispose.
	ErrDisposed = errors.New("listing: controller disposed")
)

// Controller retrieves the operations list once per activation and publishes
// the filtered, status-mapped projection to a single subscriber.
type Controller struct {
	source operations.Source
	mapper *status.Mapper
	log    zerolog.Logger

	inflight sync.WaitGroup

	mu         sync.Mutex
	phase      Phase
	generation uint64
	raw        []operations.Operation
	term       search.Term
	err        error
	cancel     context.CancelFunc
	sub        *Subscription
}

// New creates an idle controller. A nil mapper uses the default status table.
func New(source operations.Source, mapper *status.Mapper) *Controller {
	if mapper == nil {
		mapper = status.NewMapper(nil)
	}
	return &Controller{
		source: source,
		mapper: mapper,
		log:    logging.For("listing"),
	}
}

// Activate issues one retrieval and returns the subscription that receives
// its view states. A previous activation is superseded: its retrieval is
// cancelled, its subscription closed, and its result discarded.
func (c *Controller) Activate(ctx context.Context) (*Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseDisposed {
		return nil, ErrDisposed
	}
	if c.phase == PhaseLoading {
		c.log.Debug().Uint64("generation", c.generation).Msg("superseding in-flight retrieval")
	}
	c.stopLocked()

	c.generation++
	gen := c.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.phase = PhaseLoading
	c.raw = nil
	c.err = nil

	sub := newSubscription(c)
	c.sub = sub
	sub.offerLocked(c.viewLocked())

	c.inflight.Add(1)
	go c.fetch(fetchCtx, gen)

	c.log.Info().Uint64("generation", gen).Msg("activated")
	return sub, nil
}

func (c *Controller) fetch(ctx context.Context, gen uint64) {
	defer c.inflight.Done()

	start := time.Now()
	items, err := c.source.FetchAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.phase != PhaseLoading {
		c.log.Debug().Uint64("generation", gen).Msg("stale result discarded")
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if err != nil {
		c.phase = PhaseFailed
		c.err = err
		c.log.Warn().Err(err).Uint64("generation", gen).Dur("duration", time.Since(start)).Msg("retrieval failed")
	} else {
		if items == nil {
			items = []operations.Operation{}
		}
		c.phase = PhaseReady
		c.raw = items
		c.log.Info().Int("count", len(items)).Uint64("generation", gen).Dur("duration", time.Since(start)).Msg("retrieval finished")
	}
	c.publishLocked()
}

// SetSearchTerm updates the filter term. In the Ready phase the projection is
// re-derived and published before SetSearchTerm returns; in other phases the
// term is kept and applied once data arrives.
func (c *Controller) SetSearchTerm(term string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseDisposed:
		return ErrDisposed
	case PhaseIdle:
		return ErrNotActivated
	}

	next := search.Compile(term)
	if next == c.term {
		return nil
	}
	c.term = next
	if c.phase == PhaseReady {
		c.publishLocked()
	}
	return nil
}

// SearchTerm returns the current, trimmed search term.
func (c *Controller) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term.String()
}

// Current returns the latest view state without waiting on the stream.
func (c *Controller) Current() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Dispose cancels any in-flight retrieval and closes the subscription.
// It is safe to call more than once.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposeLocked()
}

func (c *Controller) disposeLocked() {
	if c.phase == PhaseDisposed {
		return
	}
	c.stopLocked()
	c.generation++
	c.phase = PhaseDisposed
	c.raw = nil
	c.err = nil
	c.log.Info().Msg("disposed")
}

// Wait blocks until every retrieval goroutine has returned.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// stopLocked cancels the outstanding retrieval and closes the subscription.
func (c *Controller) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.sub != nil {
		c.sub.closeLocked()
		c.sub = nil
	}
}

func (c *Controller) publishLocked() {
	if c.sub != nil {
		c.sub.offerLocked(c.viewLocked())
	}
}

func (c *Controller) viewLocked() ViewState {
	v := ViewState{Phase: c.phase, Term: c.term.String()}
	switch c.phase {
	case PhaseReady:
		v.Total = len(c.raw)
		v.Rows = project(c.raw, c.term, c.mapper)
	case PhaseFailed:
		v.Err = c.err
	}
	return v
}

// project filters ops by term and attaches status displays, keeping order.
func project(ops []operations.Operation, term search.Term, mapper *status.Mapper) []Row {
	rows := make([]Row, 0, len(ops))
	for _, op := range ops {
		if !term.Match(op) {
			continue
		}
		rows = append(rows, Row{Operation: op, Status: mapper.Display(op.Status)})
	}
	return rows
}

// unsubscribe handles Subscription.Cancel. Cancelling the live subscription
// disposes the controller; cancelling a superseded one is a no-op.
func (c *Controller) unsubscribe(s *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sub == s {
		c.disposeLocked()
	}
}
