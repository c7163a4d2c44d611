package app

import (
	"sync"
	"time"

	"coursebank-service/internal/domain"
)

// DefaultToastTTL is how long a toast stays visible before self-dismissing.
const DefaultToastTTL = 4 * time.Second

// Notifier keeps the queue of active toasts. Every toast carries its own expiry
// timer; dismissing a toast cancels the timer so a late callback cannot remove a
// reused slot.
type Notifier struct {
	ttl time.Duration

	mu          sync.Mutex
	nextID      int64
	order       []int64
	active      map[int64]*activeToast
	subscribers map[chan domain.Toast]struct{}
}

type activeToast struct {
	toast domain.Toast
	timer *time.Timer
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Notifier{
		ttl:         ttl,
		active:      make(map[int64]*activeToast),
		subscribers: make(map[chan domain.Toast]struct{}),
	}
}

// Push appends a toast and schedules its auto-expiry.
func (n *Notifier) Push(kind domain.ToastKind, message string) domain.Toast {
	n.mu.Lock()
	n.nextID++
	toast := domain.Toast{ID: n.nextID, Message: message, Kind: kind}
	entry := &activeToast{toast: toast}
	entry.timer = time.AfterFunc(n.ttl, func() { n.Dismiss(toast.ID) })
	n.active[toast.ID] = entry
	n.order = append(n.order, toast.ID)
	n.broadcastLocked(toast)
	n.mu.Unlock()
	return toast
}

// Dismiss removes a toast ahead of its expiry. Unknown ids are a no-op, which
// also neutralizes an expiry timer racing a manual dismissal.
func (n *Notifier) Dismiss(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	entry, ok := n.active[id]
	if !ok {
		return
	}
	entry.timer.Stop()
	delete(n.active, id)
	for i, queued := range n.order {
		if queued == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// Active returns the live toasts in push order.
func (n *Notifier) Active() []domain.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	toasts := make([]domain.Toast, 0, len(n.order))
	for _, id := range n.order {
		if entry, ok := n.active[id]; ok {
			toasts = append(toasts, entry.toast)
		}
	}
	return toasts
}

// Subscribe returns a channel receiving every pushed toast. The caller must
// invoke the returned cancel function to avoid leaks.
func (n *Notifier) Subscribe() (<-chan domain.Toast, func()) {
	ch := make(chan domain.Toast, 8)

	n.mu.Lock()
	n.subscribers[ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if _, ok := n.subscribers[ch]; ok {
			delete(n.subscribers, ch)
			close(ch)
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

func (n *Notifier) broadcastLocked(toast domain.Toast) {
	for ch := range n.subscribers {
		select {
		case ch <- toast:
		default:
			// Drop the oldest queued toast rather than block on a slow subscriber.
			select {
			case <-ch:
			default:
			}
			ch <- toast
		}
	}
}
