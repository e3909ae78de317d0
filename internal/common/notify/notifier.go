// Package notify sends optional staff alerts after a submission has been stored.
// Alerts are best-effort: failures are logged and never reach the submitter.
package notify

import (
	"context"
	"fmt"
	"strings"

	"cac-forms/internal/common/config"
	"cac-forms/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SESService is the subset of the SES client used for staff email.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSService is the subset of the SNS client used for staff SMS.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Alert describes one stored submission.
type Alert struct {
	Flow    string
	ID      int64
	Summary string
	// Urgent alerts also go out by SMS.
	Urgent bool
}

// Settings selects the channels and recipients.
type Settings struct {
	EmailEnabled bool
	FromEmail    string
	StaffEmail   string
	SMSEnabled   bool
	StaffPhone   string
}

// Notifier fans an Alert out to SES and SNS. A nil *Notifier does nothing.
type Notifier struct {
	settings Settings
	ses      SESService
	sns      SNSService
	logger   logger.Logger
}

// New builds a Notifier from configuration, loading AWS credentials only when
// at least one channel is enabled.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	settings := Settings{
		EmailEnabled: cfg.Email.Enabled,
		FromEmail:    cfg.Email.FromEmail,
		StaffEmail:   cfg.Email.StaffEmail,
		SMSEnabled:   cfg.SMS.Enabled,
		StaffPhone:   cfg.SMS.StaffPhone,
	}
	if !cfg.Enabled() {
		return NewWithClients(settings, nil, nil, log), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewWithClients(settings, ses.NewFromConfig(awsCfg), sns.NewFromConfig(awsCfg), log), nil
}

// NewWithClients wires explicit SES/SNS implementations.
func NewWithClients(settings Settings, sesClient SESService, snsClient SNSService, log logger.Logger) *Notifier {
	return &Notifier{
		settings: settings,
		ses:      sesClient,
		sns:      snsClient,
		logger:   log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

// Notify sends the alert on every enabled channel.
func (n *Notifier) Notify(ctx context.Context, alert Alert) {
	if n == nil {
		return
	}

	subject := fmt.Sprintf("New %s submission #%d", strings.ReplaceAll(alert.Flow, "-", " "), alert.ID)
	body := subject
	if alert.Summary != "" {
		body = subject + "\n\n" + alert.Summary
	}

	if n.settings.EmailEnabled && n.ses != nil {
		if err := n.sendEmail(ctx, subject, body); err != nil {
			n.logger.Error("staff email failed", map[string]interface{}{
				"error": err,
				"flow":  alert.Flow,
				"id":    alert.ID,
			})
		}
	}

	if alert.Urgent && n.settings.SMSEnabled && n.sns != nil {
		if err := n.sendSMS(ctx, subject); err != nil {
			n.logger.Error("staff SMS failed", map[string]interface{}{
				"error": err,
				"flow":  alert.Flow,
				"id":    alert.ID,
			})
		}
	}
}

func (n *Notifier) sendEmail(ctx context.Context, subject, body string) error {
	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.settings.StaffEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.settings.FromEmail),
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, message string) error {
	_, err := n.sns.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.settings.StaffPhone),
		Message:     aws.String(message),
	})
	return err
}
