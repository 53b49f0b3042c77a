// Package console holds the screen controllers: headless state
// machines behind each screen of the patient-management console. A
// controller owns its screen's state, talks to the clinic services,
// and exposes a snapshot for whatever renders it.
package console

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification for styling.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one toast shown to the user until dismissed.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// maxNotifications caps the backlog so a flapping backend cannot grow
// it without bound; the oldest entries fall off first.
const maxNotifications = 20

// Notifier collects notifications from every controller. Safe for
// concurrent use.
type Notifier struct {
	mu    sync.Mutex
	items []Notification
	now   func() time.Time
}

func NewNotifier() *Notifier {
	return &Notifier{now: time.Now}
}

// Push adds a notification and returns it, id assigned.
func (n *Notifier) Push(level Level, message string) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	item := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: n.now(),
	}
	n.items = append(n.items, item)
	if len(n.items) > maxNotifications {
		n.items = n.items[len(n.items)-maxNotifications:]
	}
	return item
}

// Dismiss drops the notification with the given id; unknown ids are a
// no-op.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Active returns the current notifications, oldest first.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}
