package notification

import (
	"net/http"
	"time"

	"datekeeper/config"
	"datekeeper/models"
	"datekeeper/utils"

	"go.uber.org/zap"
)

// DefaultDispatcher is the production implementation. Each channel is enabled
// only when its delivery backend is configured; a disabled channel reports a
// failed send rather than an error.
type DefaultDispatcher struct {
	emailEnabled bool
	smsEnabled   bool

	smtpHost     string
	smtpPort     int
	smtpUser     string
	smtpPassword string

	twilioSID   string
	twilioToken string
	twilioFrom  string

	httpClient *http.Client
}

// NewDispatcher builds a dispatcher from the loaded application config.
func NewDispatcher() *DefaultDispatcher {
	logger := utils.GetLogger()
	cfg := config.AppConfig

	d := &DefaultDispatcher{
		emailEnabled: cfg.SMTPHost != "" && cfg.SMTPUser != "",
		smsEnabled:   cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "",
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUser:     cfg.SMTPUser,
		smtpPassword: cfg.SMTPPassword,
		twilioSID:    cfg.TwilioAccountSID,
		twilioToken:  cfg.TwilioAuthToken,
		twilioFrom:   cfg.TwilioFromNumber,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}

	if d.emailEnabled {
		logger.Info("Email notifications enabled")
	} else {
		logger.Warn("Email notifications disabled (no SMTP config)")
	}
	if d.smsEnabled {
		logger.Info("SMS notifications enabled")
	} else {
		logger.Warn("SMS notifications disabled (no Twilio config)")
	}
	return d
}

// SendEmail delivers a reminder email. Returns false when email is not
// configured or delivery fails.
func (d *DefaultDispatcher) SendEmail(to, documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int, bucket models.ReminderBucket) bool {
	logger := utils.GetLogger()
	if !d.emailEnabled {
		logger.Warn("Email not configured - skipping email notification", zap.String("document", documentName))
		return false
	}

	if err := d.sendSMTP(to, documentName, documentType, expiryDate, daysRemaining, bucket); err != nil {
		logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("document", documentName),
			zap.Error(err))
		return false
	}
	logger.Info("Email notification sent",
		zap.String("to", to),
		zap.String("document", documentName),
		zap.String("bucket", string(bucket)))
	return true
}

// SendSMS delivers a reminder SMS via Twilio. Returns false when SMS is not
// configured or delivery fails.
func (d *DefaultDispatcher) SendSMS(to, documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int) bool {
	logger := utils.GetLogger()
	if !d.smsEnabled {
		logger.Warn("SMS not configured - skipping SMS notification", zap.String("document", documentName))
		return false
	}

	if err := d.sendTwilio(to, documentName, documentType, expiryDate, daysRemaining); err != nil {
		logger.Error("Failed to send SMS",
			zap.String("to", to),
			zap.String("document", documentName),
			zap.Error(err))
		return false
	}
	logger.Info("SMS notification sent",
		zap.String("to", to),
		zap.String("document", documentName))
	return true
}
