// Package notify buffers toast notifications for the storefront. The
// toast shape (type, title, message, duration) matches what the web
// client renders.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
	Info    Type = "info"
)

// DefaultDuration is how long the client shows a toast.
const DefaultDuration = 5 * time.Second

type Toast struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message,omitempty"`
	DurationMS int       `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notifier queues toasts until the client drains them. Safe for
// concurrent use.
type Notifier struct {
	mu    sync.Mutex
	queue []Toast
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Success(title, message string) { n.push(Success, title, message) }
func (n *Notifier) Error(title, message string)   { n.push(Error, title, message) }
func (n *Notifier) Warning(title, message string) { n.push(Warning, title, message) }
func (n *Notifier) Info(title, message string)    { n.push(Info, title, message) }

func (n *Notifier) push(t Type, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, Toast{
		ID:         uuid.NewString(),
		Type:       t,
		Title:      title,
		Message:    message,
		DurationMS: int(DefaultDuration / time.Millisecond),
		CreatedAt:  time.Now(),
	})
}

// Drain returns all pending toasts and clears the queue.
func (n *Notifier) Drain() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	pending := n.queue
	n.queue = nil
	return pending
}
