package service

import (
	"context"
	"sync"

	"github.com/locvowork/hr_dashboard/internal/logger"
)

// Listener is called when the bookmark set changes.
type Listener func(ctx context.Context)

type subscription struct {
	id int
	fn Listener
}

// Notifier is the in-process "bookmarks changed" channel shared by every mounted view.
// Delivery is synchronous and in subscription order.
type Notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn and returns its unsubscribe function. Calling it more than once is harmless.
func (n *Notifier) Subscribe(fn Listener) (unsubscribe func()) {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

func (n *Notifier) remove(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every current subscriber before returning.
// A panicking subscriber is logged and does not stop delivery to the others.
func (n *Notifier) Publish(ctx context.Context) {
	n.mu.RLock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.RUnlock()

	for _, s := range subs {
		n.deliver(ctx, s)
	}
}

func (n *Notifier) deliver(ctx context.Context, s subscription) {
	defer func() {
		if r := recover(); r != nil {
			notifierDeliveries.WithLabelValues("panic").Inc()
			logger.ErrorLog(ctx, "notifier: subscriber %d panicked: %v", s.id, r)
		}
	}()
	s.fn(ctx)
	notifierDeliveries.WithLabelValues("ok").Inc()
}

// Subscribers returns the number of live subscriptions.
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}
