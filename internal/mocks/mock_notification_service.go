package mocks

import "sync"

// MockNotificationService implements domain.NotificationService for
// testing. Sent messages are recorded for assertions.
type MockNotificationService struct {
	SendVerificationFunc  func(email, code string) error
	SendPasswordResetFunc func(email, code string) error

	mu   sync.Mutex
	sent []SentMessage
}

// SentMessage records one delivered notification
type SentMessage struct {
	Kind  string // "verification" or "reset"
	Email string
	Code  string
}

// NewMockNotificationService creates a new MockNotificationService
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendVerification delivers a registration OTP
func (m *MockNotificationService) SendVerification(email, code string) error {
	if m.SendVerificationFunc != nil {
		return m.SendVerificationFunc(email, code)
	}
	m.record("verification", email, code)
	return nil
}

// SendPasswordReset delivers a password-reset OTP
func (m *MockNotificationService) SendPasswordReset(email, code string) error {
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(email, code)
	}
	m.record("reset", email, code)
	return nil
}

func (m *MockNotificationService) record(kind, email, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMessage{Kind: kind, Email: email, Code: code})
}

// Sent returns all recorded messages
func (m *MockNotificationService) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
