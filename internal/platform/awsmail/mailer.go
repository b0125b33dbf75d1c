// Package awsmail implements the mailer collaborator on top of AWS SES.
package awsmail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"github.com/meandevstar/atlas-backend/internal/config"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
)

// Mailer sends transactional email through SES from a fixed system
// address.
type Mailer struct {
	client *ses.SES
	source string
	logger *slog.Logger
}

// New creates a Mailer from the AWS configuration.
func New(cfg config.AWSConfig, log *slog.Logger) (*Mailer, error) {
	if cfg.SystemEmail == "" {
		return nil, fmt.Errorf("system email address is required")
	}
	if log == nil {
		log = slog.Default()
	}

	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(
			cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Mailer{
		client: ses.New(sess),
		source: cfg.SystemEmail,
		logger: log.With(slog.String("component", "mailer")),
	}, nil
}

// SendEmail delivers an HTML email to the given recipients.
func (m *Mailer) SendEmail(ctx context.Context, recipients []string, subject, htmlBody string) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	toAddresses := make([]*string, 0, len(recipients))
	for _, r := range recipients {
		toAddresses = append(toAddresses, aws.String(r))
	}

	_, err := m.client.SendEmailWithContext(ctx, &ses.SendEmailInput{
		Destination: &ses.Destination{ToAddresses: toAddresses},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{Data: aws.String(htmlBody)},
			},
			Subject: &ses.Content{Data: aws.String(subject)},
		},
		Source: aws.String(m.source),
	})
	if err != nil {
		log.Error("failed to send email", "error", err, "subject", subject)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Debug("email sent", "subject", subject, "recipients", len(recipients))
	return nil
}
