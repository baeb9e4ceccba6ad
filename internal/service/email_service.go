package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"
)

// LevelReport tells a guardian that a child completed every word of a level
type LevelReport struct {
	UserName      string
	GuardianEmail string
	LevelNumber   int
	FinalScore    int
	PointsEarned  int
	Words         []WordResult
}

type emailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    emailSender
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a disabled service.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Info().Msg("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("email service enabled")

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendLevelReport emails the guardian a summary of a completed level
func (s *EmailService) SendLevelReport(ctx context.Context, report LevelReport) error {
	if !s.enabled {
		log.Debug().Str("to", report.GuardianEmail).Msg("skipping level report (email disabled)")
		return nil
	}

	subject := fmt.Sprintf("%s completó el nivel %d", report.UserName, report.LevelNumber)
	htmlBody, textBody := renderLevelReport(report)

	if s.debug {
		log.Debug().
			Str("to", report.GuardianEmail).
			Str("subject", subject).
			Int("html_bytes", len(htmlBody)).
			Int("text_bytes", len(textBody)).
			Msg("sending level report")
	}

	return s.sendEmail(ctx, report.GuardianEmail, subject, htmlBody, textBody)
}

func renderLevelReport(report LevelReport) (string, string) {
	var rows, lines strings.Builder
	for _, w := range report.Words {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td></tr>", html.EscapeString(w.Word), w.Attempts)
		fmt.Fprintf(&lines, "- %s (%d intentos)\n", w.Word, w.Attempts)
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>¡%s completó el nivel %d!</h2>
	<p>Puntaje final: <strong>%d</strong>. Puntos ganados: <strong>%d</strong>.</p>
	<table>
		<tr><th>Palabra</th><th>Intentos</th></tr>
		%s
	</table>
	<p style="font-size: 12px; color: #666;">Este es un correo automático. Por favor no respondas.</p>
</body>
</html>`, html.EscapeString(report.UserName), report.LevelNumber, report.FinalScore, report.PointsEarned, rows.String())

	textBody := fmt.Sprintf(`¡%s completó el nivel %d!

Puntaje final: %d
Puntos ganados: %d

%s
---
Este es un correo automático. Por favor no respondas.
`, report.UserName, report.LevelNumber, report.FinalScore, report.PointsEarned, lines.String())

	return htmlBody, textBody
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", toEmail).Str("message_id", aws.ToString(result.MessageId)).Msg("email sent")
	return nil
}
