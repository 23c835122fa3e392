package testdoubles

import (
	"context"
	"sync"

	"github.com/shelfwise/circulation-go/lending/shell"
)

// SpyNotification represents a recorded notification dispatch.
type SpyNotification struct {
	MemberID string
	Kind     string
	Payload  []byte
}

// NotificationDispatcherSpy captures notifications for testing post-commit
// side effects. If FailWith is set, every Notify call returns that error.
type NotificationDispatcherSpy struct {
	notifications []SpyNotification
	mu            sync.Mutex

	FailWith error
}

// NewNotificationDispatcherSpy creates a new NotificationDispatcherSpy instance.
func NewNotificationDispatcherSpy() *NotificationDispatcherSpy {
	return &NotificationDispatcherSpy{}
}

// Notify implements the NotificationDispatcher interface for testing.
func (s *NotificationDispatcherSpy) Notify(_ context.Context, memberID string, kind string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	s.notifications = append(s.notifications, SpyNotification{
		MemberID: memberID,
		Kind:     kind,
		Payload:  payload,
	})

	return nil
}

// GetNotifications returns a copy of all recorded notifications.
func (s *NotificationDispatcherSpy) GetNotifications() []SpyNotification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyNotification(nil), s.notifications...)
}

// HasNotification checks if a notification of the given kind was dispatched
// to the given member.
func (s *NotificationDispatcherSpy) HasNotification(memberID string, kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.MemberID == memberID && n.Kind == kind {
			return true
		}
	}

	return false
}

// AuditRecorderSpy captures audit entries for testing staff-action commands.
// If FailWith is set, every Record call returns that error.
type AuditRecorderSpy struct {
	entries []shell.AuditEntry
	mu      sync.Mutex

	FailWith error
}

// NewAuditRecorderSpy creates a new AuditRecorderSpy instance.
func NewAuditRecorderSpy() *AuditRecorderSpy {
	return &AuditRecorderSpy{}
}

// Record implements the AuditRecorder interface for testing.
func (s *AuditRecorderSpy) Record(_ context.Context, entry shell.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	s.entries = append(s.entries, entry)

	return nil
}

// GetEntries returns a copy of all recorded audit entries.
func (s *AuditRecorderSpy) GetEntries() []shell.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]shell.AuditEntry(nil), s.entries...)
}

// Compile-time checks for the side effect interfaces.
var (
	_ shell.NotificationDispatcher = (*NotificationDispatcherSpy)(nil)
	_ shell.AuditRecorder          = (*AuditRecorderSpy)(nil)
)
