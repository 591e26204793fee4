package studio

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Caps on the bounded collections the store keeps.
const (
	maxNotifications = 5
	maxWorkerLogs    = 8
)

// Store is the process-lifetime application state: production history,
// notifications, credits, and the worker log ring. All mutation goes through
// its methods; nothing is persisted.
type Store struct {
	mu            sync.Mutex
	history       []Result
	notifications []Notification
	credits       int
	workerLogs    []string
}

// NewStore creates a store with the given starting credit balance.
func NewStore(credits int) *Store {
	return &Store{credits: credits}
}

// AddResult prepends a finished run to history. Most recent first is the
// sole authoritative display order.
func (s *Store) AddResult(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]Result{r}, s.history...)
}

// History returns a copy of the history, most recent first.
func (s *Store) History() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Result(nil), s.history...)
}

// ToggleFavorite flips the favorite flag on the result with the given id.
// It reports whether the id was found.
func (s *Store) ToggleFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID == id {
			s.history[i].IsFavorite = !s.history[i].IsFavorite
			return true
		}
	}
	return false
}

// DeleteResult removes the result with the given id. It reports whether the
// id was found.
func (s *Store) DeleteResult(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.history {
		if s.history[i].ID == id {
			s.history = append(s.history[:i], s.history[i+1:]...)
			return true
		}
	}
	return false
}

// ClearHistory drops every recorded run.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// Credits returns the remaining credit balance.
func (s *Store) Credits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credits
}

// DeductCredit removes exactly one credit. It fails when the balance is
// already zero.
func (s *Store) DeductCredit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credits <= 0 {
		return ErrInsufficientCredits
	}
	s.credits--
	return nil
}

// AddCredits tops up the balance.
func (s *Store) AddCredits(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credits += n
}

// Notify prepends a notification, keeping only the newest entries.
func (s *Store) Notify(title, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	}
	s.notifications = append([]Notification{n}, s.notifications...)
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[:maxNotifications]
	}
}

// Notifications returns a copy of the notification list, newest first.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.notifications...)
}

// MarkNotificationsRead flags every notification as read.
func (s *Store) MarkNotificationsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
}

// AppendLog pushes a worker log line onto the ring, newest first.
func (s *Store) AppendLog(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workerLogs = append([]string{line}, s.workerLogs...)
	if len(s.workerLogs) > maxWorkerLogs {
		s.workerLogs = s.workerLogs[:maxWorkerLogs]
	}
}

// WorkerLogs returns a copy of the worker log ring, newest first.
func (s *Store) WorkerLogs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.workerLogs...)
}
