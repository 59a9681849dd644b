package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldNotify(t *testing.T) {
	tests := []struct {
		plan     string
		expected bool
	}{
		{"premium", true},
		{"enterprise", true},
		{"free", false},
		{"", false},
		{"Premium", false},
	}

	for _, tt := range tests {
		t.Run("plan_"+tt.plan, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldNotify(tt.plan))
		})
	}
}

func TestNewMailerDisabledWithoutHost(t *testing.T) {
	mailer := NewMailer(SMTPConfig{})
	assert.Nil(t, mailer)

	sent, err := mailer.SendReportReady("kund@example.se", "premium", ReportReady{})
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestSendReportReadySkipsIneligiblePlan(t *testing.T) {
	mailer := NewMailer(SMTPConfig{Host: "smtp.example.se", Port: 587})
	require.NotNil(t, mailer)

	sent, err := mailer.SendReportReady("kund@example.se", "free", ReportReady{})
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestReportReadyTemplate(t *testing.T) {
	var body bytes.Buffer
	err := reportReadyTmpl.Execute(&body, ReportReady{
		CompanyName: "Testbolaget AB",
		ReviewCount: 42,
		PositivePct: 71.4,
		NegativePct: 14.3,
		ReportURL:   "https://app.neilanx.se/reports/abc123",
	})
	require.NoError(t, err)

	rendered := body.String()
	assert.Contains(t, rendered, "Testbolaget AB")
	assert.Contains(t, rendered, "42 recensioner")
	assert.Contains(t, rendered, "71.4")
	assert.Contains(t, rendered, "https://app.neilanx.se/reports/abc123")
}
