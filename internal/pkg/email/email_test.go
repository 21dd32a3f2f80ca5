package email

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/cmlabs-hris/attendance-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmailService(t *testing.T, cfg config.SMTPConfig) *emailServiceImpl {
	t.Helper()
	svc, err := NewEmailService(cfg)
	require.NoError(t, err)
	impl := svc.(*emailServiceImpl)
	impl.backoff = 0
	return impl
}

var decision = LeaveDecisionData{
	EmployeeName: "Asha",
	LeaveType:    "sick",
	StartDate:    "2025-08-04",
	EndDate:      "2025-08-06",
	TotalDays:    3,
	Status:       "Approved",
	HasBalance:   true,
	Remaining:    5,
	Total:        10,
}

func TestSendLeaveDecision_SkipsWithoutHost(t *testing.T) {
	svc := newTestEmailService(t, config.SMTPConfig{})
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}

	assert.NoError(t, svc.SendLeaveDecision("asha@example.com", decision))
}

func TestSendLeaveDecision_RendersTemplate(t *testing.T) {
	svc := newTestEmailService(t, config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "hr@example.com", FromName: "HR"})
	var sent []byte
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.example.com:587", addr)
		assert.Equal(t, []string{"asha@example.com"}, to)
		sent = msg
		return nil
	}

	require.NoError(t, svc.SendLeaveDecision("asha@example.com", decision))

	body := string(sent)
	assert.Contains(t, body, "Subject: Leave request Approved: 2025-08-04 to 2025-08-06")
	assert.Contains(t, body, "<strong>Approved</strong>")
	assert.Contains(t, body, "Remaining sick balance: 5 of 10 day(s).")
}

func TestSendLeaveDecision_Retries(t *testing.T) {
	svc := newTestEmailService(t, config.SMTPConfig{Host: "smtp.example.com", Port: 25})
	attempts := 0
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		attempts++
		return errors.New("connection refused")
	}

	err := svc.SendLeaveDecision("asha@example.com", decision)

	assert.Error(t, err)
	assert.Equal(t, maxRetries, attempts)
}
