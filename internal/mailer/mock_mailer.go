package mailer

import (
	"sync"
)

type SentMail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records mail instead of delivering it. Send fails with Err when it is set.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentMail
	Err  error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.sent = append(m.sent, SentMail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	sent := make([]SentMail, len(m.sent))
	copy(sent, m.sent)
	return sent
}
