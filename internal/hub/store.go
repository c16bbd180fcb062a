package hub

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

// Store holds the current session snapshot. Single writer (the dispatcher),
// any number of readers: Snapshot() loads an atomic pointer, so readers are
// never blocked by a transition in progress.
type Store struct {
	mu  sync.Mutex // serializes writers
	cur atomic.Pointer[Snapshot]

	subMu sync.Mutex
	subs  []chan Snapshot
}

func NewStore() *Store {
	s := &Store{}
	s.cur.Store(&Snapshot{})
	return s
}

func (s *Store) Snapshot() Snapshot {
	return *s.cur.Load()
}

// Apply runs the transition for event and swaps in the result. On error the
// previous snapshot stays current.
func (s *Store) Apply(event string, payload json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Transition(*s.cur.Load(), event, payload)
	if err != nil {
		return err
	}
	s.cur.Store(&next)
	s.notify(next)
	return nil
}

// Reset restores the initial snapshot (empty room, no slot, phase none).
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Snapshot{}
	s.cur.Store(&next)
	s.notify(next)
}

// Subscribe returns a channel that receives the snapshot after each change.
// Delivery is coalescing: if the subscriber lags, intermediate snapshots are
// dropped and only the channel's buffered one is kept.
func (s *Store) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// drain the stale snapshot, then publish the fresh one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
