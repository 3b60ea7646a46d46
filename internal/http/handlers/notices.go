package handlers

import "sync"

// Notice is a modal alert the browser client should show: the card-blocked
// error or the transaction history.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NoticeBuffer implements session.Prompts for the kiosk. HTTP cannot block a
// request on a modal dialog, so cancellation is confirmed client-side before
// the Cancel event is ever sent and ConfirmCancel always answers yes; alerts
// are queued here and drained into the next response. The mutex covers the
// hand-off between the session loop goroutine and the request goroutine.
type NoticeBuffer struct {
	mu      sync.Mutex
	pending []Notice
}

// NewNoticeBuffer returns an empty buffer.
func NewNoticeBuffer() *NoticeBuffer {
	return &NoticeBuffer{}
}

// ConfirmCancel always confirms; the browser asked the user already.
func (b *NoticeBuffer) ConfirmCancel() bool { return true }

// Notify queues an alert for the next drain.
func (b *NoticeBuffer) Notify(title, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, Notice{Title: title, Message: message})
}

// Drain returns the queued notices and empties the buffer.
func (b *NoticeBuffer) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}
