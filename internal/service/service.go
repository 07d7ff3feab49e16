package service

import (
	"sync"
	"time"

	"quicksell-pos/internal/ws"
)

// Notifier receives domain events after a successful write. *ws.Hub
// satisfies it.
type Notifier interface {
	Publish(e ws.Event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(ws.Event) {}

// Clock returns the current time. Tests replace it to pin "today".
type Clock func() time.Time

// WriteLock serializes every operation that writes both the sale log and
// the catalog. Checkout and void share one instance per process.
type WriteLock struct {
	sync.Mutex
}

func orNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
