package session

import "context"

// request pairs one event (or a snapshot query) with the channel its display
// reply goes to.
type request struct {
	event    Event
	snapshot bool
	reply    chan Display
}

// Loop owns a controller on a single goroutine and serializes every event
// submitted to it, whichever goroutine it arrives from. One event is processed
// to completion before the next is accepted; that ordering is the only
// concurrency discipline the ledger needs.
type Loop struct {
	ctrl     *Controller
	requests chan request
}

// NewLoop wraps the controller. Call Run on its own goroutine before Submit.
func NewLoop(ctrl *Controller) *Loop {
	return &Loop{ctrl: ctrl, requests: make(chan request)}
}

// Run consumes requests until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-l.requests:
			if req.snapshot {
				req.reply <- l.ctrl.Display()
				continue
			}
			req.reply <- l.ctrl.Handle(req.event)
		}
	}
}

// Submit hands one event to the loop and waits for the resulting display.
func (l *Loop) Submit(ctx context.Context, ev Event) (Display, error) {
	return l.send(ctx, request{event: ev, reply: make(chan Display, 1)})
}

// Snapshot returns the current display without feeding an event.
func (l *Loop) Snapshot(ctx context.Context) (Display, error) {
	return l.send(ctx, request{snapshot: true, reply: make(chan Display, 1)})
}

func (l *Loop) send(ctx context.Context, req request) (Display, error) {
	select {
	case <-ctx.Done():
		return Display{}, ctx.Err()
	case l.requests <- req:
	}
	select {
	case <-ctx.Done():
		return Display{}, ctx.Err()
	case d := <-req.reply:
		return d, nil
	}
}
