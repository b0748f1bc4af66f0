package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"wordtrainer/internal/models"
)

// sesSender is the part of the SES client used for sending.
type sesSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends practice reports via Amazon SES
type EmailService struct {
	client     sesSender
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service. Without a sender address
// the service is disabled and every send is a no-op.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		slog.Info("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	slog.Info("Email service enabled", "from", fromEmail, "region", awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s != nil && s.enabled
}

// SendResultSummary mails the outcome of a finished practice, listing the
// words that were missed.
func (s *EmailService) SendResultSummary(ctx context.Context, toEmail, vocabularyName string, result *models.TestResult) error {
	if !s.IsEnabled() {
		slog.Debug("Skipping result email (service disabled)", "to", toEmail)
		return nil
	}

	subject := fmt.Sprintf("%s: %d%% (%s)", vocabularyName, result.Score, result.Bucket)
	textBody, htmlBody := s.renderResultSummary(vocabularyName, result)

	if s.debug {
		slog.Debug("Sending result email", "to", toEmail, "subject", subject, "html_bytes", len(htmlBody))
	}
	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) renderResultSummary(vocabularyName string, result *models.TestResult) (string, string) {
	missed := result.Missed()
	link := fmt.Sprintf("%s/api/results/%d", s.appBaseURL, result.ID)

	var text strings.Builder
	fmt.Fprintf(&text, "Practice finished: %s\n\n", vocabularyName)
	fmt.Fprintf(&text, "Score: %d%% (%s)\n", result.Score, result.Bucket)
	fmt.Fprintf(&text, "Correct on first try: %d of %d\n", result.CorrectFirstTry, result.TotalWords)
	if len(missed) > 0 {
		text.WriteString("\nWords to review:\n")
		for _, w := range missed {
			fmt.Fprintf(&text, "- %s = %s\n", w.Original, w.Translation)
		}
	}
	fmt.Fprintf(&text, "\nDetails: %s\n", link)

	var rows strings.Builder
	for _, w := range missed {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%d</td></tr>",
			html.EscapeString(w.Original), html.EscapeString(w.Translation), w.Attempts)
	}
	review := ""
	if rows.Len() > 0 {
		review = "<h2>Words to review</h2><table><tr><th>Word</th><th>Translation</th><th>Attempts</th></tr>" +
			rows.String() + "</table>"
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>%s</h1>
	<p>Score: <strong>%d%%</strong> (%s)</p>
	<p>Correct on first try: %d of %d</p>
	%s
	<p><a href="%s">View details</a></p>
</body>
</html>
`, html.EscapeString(vocabularyName), result.Score, result.Bucket,
		result.CorrectFirstTry, result.TotalWords, review, html.EscapeString(link))

	return text.String(), htmlBody
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

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	slog.Info("Email sent", "to", toEmail, "message_id", aws.ToString(out.MessageId))
	return nil
}
