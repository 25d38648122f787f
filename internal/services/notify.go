package services

import (
	"fmt"
	"sync"

	"iwfm-backend/pkg/email"
	"iwfm-backend/pkg/metrics"

	"go.uber.org/zap"
)

// Mailer is the outbound mail transport. One call, one email; retrying is
// the caller's decision.
type Mailer interface {
	SendAlert(to string, data email.AlertData) error
}

// Notifier composes and dispatches alert notification emails. A small
// per-alert in-flight set suppresses duplicate concurrent sends for the
// same alert id; the id is released on success and failure alike.
type Notifier struct {
	alerts    AlertStore
	mailer    Mailer
	recipient string
	logger    *zap.Logger

	mu      sync.Mutex
	sending map[string]struct{}
}

func NewNotifier(alerts AlertStore, mailer Mailer, recipient string, logger *zap.Logger) *Notifier {
	return &Notifier{
		alerts:    alerts,
		mailer:    mailer,
		recipient: recipient,
		logger:    logger,
		sending:   make(map[string]struct{}),
	}
}

// SendAlertEmail dispatches exactly one email for the given alert to the
// configured operator address. A missing alert produces no side effect.
func (n *Notifier) SendAlertEmail(id string) error {
	if !n.begin(id) {
		return fmt.Errorf("alert %q: %w", id, ErrSendInFlight)
	}
	defer n.end(id)

	alert, err := n.alerts.FindByID(id)
	if err != nil {
		return err
	}

	data := email.AlertData{
		Type:        alert.Type,
		Tanker:      alert.Tanker,
		Severity:    alert.Severity,
		Timestamp:   alert.Ts.Local().Format(displayTimeLayout),
		Description: alert.Description,
	}

	if err := n.mailer.SendAlert(n.recipient, data); err != nil {
		metrics.AlertEmailFailures.Inc()
		n.logger.Warn("alert email send failed",
			zap.String("alert_id", id),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	metrics.AlertEmailsSent.Inc()
	n.logger.Info("alert email sent",
		zap.String("alert_id", id),
		zap.String("type", alert.Type),
		zap.String("severity", alert.Severity))
	return nil
}

// begin reserves id for sending. It returns false while a send for the
// same id is already in flight.
func (n *Notifier) begin(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, inFlight := n.sending[id]; inFlight {
		return false
	}
	n.sending[id] = struct{}{}
	return true
}

func (n *Notifier) end(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.sending, id)
}
