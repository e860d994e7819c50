package mailer

import "sync"

// Email records a message captured by MockMailer.
type Email struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer implements Mailer for tests and records every message instead of
// sending it. Registration sends mail from a goroutine, so access is guarded.
type MockMailer struct {
	mu     sync.RWMutex
	emails []Email
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = append(m.emails, Email{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// Reset discards all recorded emails.
func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = nil
}

// SentEmails returns a copy of all recorded emails.
func (m *MockMailer) SentEmails() []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emails := make([]Email, len(m.emails))
	copy(emails, m.emails)
	return emails
}
