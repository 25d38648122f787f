package email

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// severityColors drive the color coding of the notification header and
// the action banner.
var severityColors = map[string]string{
	"high":   "#dc3545",
	"medium": "#ffc107",
	"low":    "#6c757d",
}

const defaultSeverityColor = "#6c757d"

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
}

// AlertData carries the alert fields embedded in the notification email.
// Timestamp is expected pre-formatted as local "YYYY-MM-DD HH:MM".
type AlertData struct {
	Type        string
	Tanker      string
	Severity    string
	Timestamp   string
	Description string
}

// alertTemplateData is AlertData plus the derived presentation fields the
// template needs.
type alertTemplateData struct {
	AlertData
	SeverityUpper string
	Color         template.CSS
}

func NewEmailService(smtpHost, smtpPort, smtpUsername, smtpPassword, fromEmail, fromName string) *EmailService {
	return &EmailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: smtpUsername,
		smtpPassword: smtpPassword,
		fromEmail:    fromEmail,
		fromName:     fromName,
	}
}

// SendAlert composes the alert notification and transmits it. Exactly one
// email per call; a transport failure is returned to the caller without
// retry.
func (s *EmailService) SendAlert(to string, data AlertData) error {
	body, err := renderAlertBody(data)
	if err != nil {
		return fmt.Errorf("failed to render alert email: %w", err)
	}

	subject := alertSubject(data)
	message := s.buildEmailMessage(to, subject, body)

	if err := s.sendEmail(to, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func alertSubject(data AlertData) string {
	return fmt.Sprintf("ALERT: %s - %s (%s)", data.Type, data.Tanker, strings.ToUpper(data.Severity))
}

func renderAlertBody(data AlertData) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/alert_notification.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	color, ok := severityColors[strings.ToLower(data.Severity)]
	if !ok {
		color = defaultSeverityColor
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, alertTemplateData{
		AlertData:     data,
		SeverityUpper: strings.ToUpper(data.Severity),
		Color:         template.CSS(color),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return body.String(), nil
}

func (s *EmailService) buildEmailMessage(to, subject, htmlBody string) []byte {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)

	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + htmlBody

	return []byte(message)
}

func (s *EmailService) sendEmail(to string, message []byte) error {
	// Set up authentication
	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	// TLS config
	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.smtpHost,
	}

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)

	// For port 587 (TLS), use STARTTLS
	conn, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	if err = conn.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if err = conn.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = conn.Mail(s.fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	_, err = w.Write(message)
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return conn.Quit()
}
