package listing

import (
	"github.com/five82/opsview/internal/operations"
	"github.com/five82/opsview/internal/status"
)

// Phase is the lifecycle position of a Controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	case PhaseDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Row is one entry of the projection: the operation plus its status display.
type Row struct {
	Operation operations.Operation
	Status    status.Display
}

// ViewState is what a renderer needs to draw the list.
//
// Rows and Total are set only in PhaseReady; Err only in PhaseFailed.
type ViewState struct {
	Phase Phase
	Rows  []Row
	Total int
	Term  string
	Err   error
}

// Filtered reports whether the search term hides some operations.
func (v ViewState) Filtered() bool {
	return v.Phase == PhaseReady && len(v.Rows) < v.Total
}

// Subscription delivers view states for one activation. The channel holds
// at most one pending state; a newer state replaces an unread one, so a slow
// reader always sees the latest. The channel is closed when the activation is
// superseded or the controller is disposed.
type Subscription struct {
	ctrl   *Controller
	ch     chan ViewState
	closed bool // guarded by ctrl.mu
}

func newSubscription(c *Controller) *Subscription {
	return &Subscription{ctrl: c, ch: make(chan ViewState, 1)}
}

// States returns the receive side of the stream.
func (s *Subscription) States() <-chan ViewState {
	return s.ch
}

// Cancel releases the subscription. For the live subscription this disposes
// the controller.
func (s *Subscription) Cancel() {
	s.ctrl.unsubscribe(s)
}

// offerLocked must be called with ctrl.mu held. The controller is the only
// sender, so the second send cannot block once the stale value is drained.
func (s *Subscription) offerLocked(v ViewState) {
	if s.closed {
		return
	}
	select {
	case s.ch <- v:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- v
}

func (s *Subscription) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
