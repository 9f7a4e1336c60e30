package verification

import (
	"github.com/pion/logging"
)

// Listener observes state changes on a Transaction. Implementations must
// not mutate the Transaction; they exist to drive UI updates or metrics.
type Listener interface {
	OnStateChanged(tx *Transaction, old, new State)
}

// ListenerFunc adapts a plain function to a Listener.
type ListenerFunc func(tx *Transaction, old, new State)

// OnStateChanged implements Listener.
func (f ListenerFunc) OnStateChanged(tx *Transaction, old, new State) {
	f(tx, old, new)
}

// notifyListeners calls every registered listener synchronously under the
// dispatch executor, in registration order, and swallows any panic a
// listener raises so a broken observer cannot corrupt the state machine.
func notifyListeners(tx *Transaction, listeners []Listener, old, new State, log logging.LeveledLogger) {
	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil && log != nil {
					log.Warnf("verification: listener panicked: %v", r)
				}
			}()
			l.OnStateChanged(tx, old, new)
		}()
	}
}
