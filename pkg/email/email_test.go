package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAlertData(severity string) AlertData {
	return AlertData{
		Type:        "Leakage Detected",
		Tanker:      "TN-01-1234",
		Severity:    severity,
		Timestamp:   "2024-03-05 14:30",
		Description: "flow meter mismatch at outlet valve",
	}
}

func TestAlertSubject(t *testing.T) {
	subject := alertSubject(testAlertData("high"))
	assert.Equal(t, "ALERT: Leakage Detected - TN-01-1234 (HIGH)", subject)
}

func TestRenderAlertBody_SeverityColors(t *testing.T) {
	tests := []struct {
		severity string
		color    string
	}{
		{severity: "high", color: "#dc3545"},
		{severity: "medium", color: "#ffc107"},
		{severity: "low", color: "#6c757d"},
		{severity: "unknown", color: defaultSeverityColor},
	}

	for _, tt := range tests {
		body, err := renderAlertBody(testAlertData(tt.severity))
		require.NoError(t, err, "severity=%s", tt.severity)
		assert.Contains(t, body, tt.color, "severity=%s", tt.severity)
	}
}

func TestRenderAlertBody_Fields(t *testing.T) {
	body, err := renderAlertBody(testAlertData("high"))
	require.NoError(t, err)

	assert.Contains(t, body, "Leakage Detected")
	assert.Contains(t, body, "TN-01-1234")
	assert.Contains(t, body, "HIGH")
	assert.Contains(t, body, "2024-03-05 14:30")
	assert.Contains(t, body, "flow meter mismatch at outlet valve")
}

func TestRenderAlertBody_EscapesHTML(t *testing.T) {
	data := testAlertData("low")
	data.Description = `<script>alert("x")</script>`

	body, err := renderAlertBody(data)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestBuildEmailMessage(t *testing.T) {
	service := NewEmailService("smtp.example.com", "587", "user", "pass",
		"alerts@iwfm.example.com", "IWFM Alerts")

	message := string(service.buildEmailMessage("ops@iwfm.example.com", "ALERT: test", "<p>body</p>"))

	assert.Contains(t, message, "From: IWFM Alerts <alerts@iwfm.example.com>\r\n")
	assert.Contains(t, message, "To: ops@iwfm.example.com\r\n")
	assert.Contains(t, message, "Subject: ALERT: test\r\n")
	assert.Contains(t, message, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(message, "\r\n<p>body</p>"))
}
