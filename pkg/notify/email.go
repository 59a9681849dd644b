// Package notify sends report-ready email notifications over SMTP.
package notify

import (
	"bytes"
	"fmt"
	"html/template"

	gomail "gopkg.in/gomail.v2"
)

// Plans that receive email notifications. Free accounts poll the API instead.
var notifiablePlans = map[string]bool{
	"premium":    true,
	"enterprise": true,
}

// SMTPConfig holds the mail server settings.
type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM" default:"noreply@neilanx.se"`
}

// ReportReady describes a completed analysis for the notification email.
type ReportReady struct {
	CompanyName string
	ReviewCount int
	PositivePct float64
	NegativePct float64
	ReportURL   string
}

const reportReadyTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #111827;">
  <h2 style="color: #2A77D4;">Din rapport är klar!</h2>
  <p>Hej {{.CompanyName}},</p>
  <p>Analysen av dina {{.ReviewCount}} recensioner är färdig.</p>
  <ul>
    <li>Positiva: {{printf "%.1f" .PositivePct}}%</li>
    <li>Negativa: {{printf "%.1f" .NegativePct}}%</li>
  </ul>
  <p><a href="{{.ReportURL}}" style="color: #2A77D4;">Ladda ner din PDF-rapport</a></p>
  <p>Med vänliga hälsningar,<br>NeilanX</p>
</body>
</html>`

var reportReadyTmpl = template.Must(template.New("report_ready").Parse(reportReadyTemplate))

// Mailer sends notification emails. A nil Mailer is a no-op.
type Mailer struct {
	config SMTPConfig
}

// NewMailer creates a mailer, or nil when no SMTP host is configured so
// callers can skip notification without special-casing.
func NewMailer(config SMTPConfig) *Mailer {
	if config.Host == "" {
		return nil
	}
	return &Mailer{config: config}
}

// ShouldNotify reports whether the given subscription plan receives
// report-ready emails.
func ShouldNotify(plan string) bool {
	return notifiablePlans[plan]
}

// SendReportReady emails the report-ready notification. It returns
// (false, nil) when the mailer is disabled or the plan is not eligible,
// and (false, err) when delivery fails. Send failures must never fail the
// analysis itself; callers log and move on.
func (m *Mailer) SendReportReady(to, plan string, info ReportReady) (bool, error) {
	if m == nil {
		return false, nil
	}
	if !ShouldNotify(plan) {
		return false, nil
	}

	var body bytes.Buffer
	if err := reportReadyTmpl.Execute(&body, info); err != nil {
		return false, fmt.Errorf("failed to render notification email: %w", err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.config.From)
	message.SetHeader("To", to)
	message.SetHeader("Subject", fmt.Sprintf("NeilanX: Rapporten för %s är klar", info.CompanyName))
	message.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.config.Host, m.config.Port, m.config.Username, m.config.Password)
	if err := dialer.DialAndSend(message); err != nil {
		return false, fmt.Errorf("failed to send notification email: %w", err)
	}
	return true, nil
}
