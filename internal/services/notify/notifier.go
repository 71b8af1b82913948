package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/config"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/logging"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/metrics"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
)

// Notifier dispatches out-of-band alert notifications over webhook
// and email. Dispatch is best-effort: failures are logged and counted
// but never block the detection pipeline.
type Notifier struct {
	cfg     *config.Config
	log     zerolog.Logger
	client  *resty.Client
	metrics *metrics.Metrics
}

// New creates the notifier
func New(cfg *config.Config, m *metrics.Metrics) *Notifier {
	client := resty.New().
		SetTimeout(cfg.WebhookTimeout).
		SetRetryCount(2)

	return &Notifier{
		cfg:     cfg,
		log:     logging.NewServiceLogger("notify"),
		client:  client,
		metrics: m,
	}
}

// NotifyNewAlert dispatches notifications for a new alert in the
// background
func (n *Notifier) NotifyNewAlert(a models.Alert) {
	go n.Dispatch(a)
}

// Dispatch sends the alert to every configured channel synchronously
func (n *Notifier) Dispatch(a models.Alert) {
	if n.cfg.WebhookURL != "" {
		if err := n.sendWebhook(a); err != nil {
			n.metrics.NotifyErrors.Add(1)
			n.log.Error().Err(err).Int64("alert_id", a.ID).Msg("Webhook notification failed")
		}
	}

	if n.cfg.EmailEnabled {
		if err := n.sendEmail(a); err != nil {
			n.metrics.NotifyErrors.Add(1)
			n.log.Error().Err(err).Int64("alert_id", a.ID).Msg("Email notification failed")
		}
	}
}

func (n *Notifier) sendWebhook(a models.Alert) error {
	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(models.NewAlertEventFrom(a)).
		Post(n.cfg.WebhookURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	n.log.Debug().Int64("alert_id", a.ID).Msg("Webhook notification sent")
	return nil
}

func (n *Notifier) sendEmail(a models.Alert) error {
	subject := fmt.Sprintf("[%s] Weapon detected: %s at %s", a.Severity, a.ObjectClass, a.CameraName)
	body := fmt.Sprintf(
		"%s\r\n\r\nCamera: %s\r\nLocation: %s\r\nConfidence: %.2f\r\nTime: %s\r\n",
		a.Message, a.CameraName, a.Location, a.Confidence, a.CreatedAt.Format("2006-01-02 15:04:05 MST"),
	)

	msg := strings.Join([]string{
		"From: " + n.cfg.EmailFrom,
		"To: " + strings.Join(n.cfg.EmailTo, ", "),
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPServer, n.cfg.SMTPPort)
	if err := smtp.SendMail(addr, nil, n.cfg.EmailFrom, n.cfg.EmailTo, []byte(msg)); err != nil {
		return err
	}

	n.log.Debug().Int64("alert_id", a.ID).Msg("Email notification sent")
	return nil
}
