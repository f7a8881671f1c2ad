package services

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"license-management-api/config"
)

// LicenseData is the license payload handed to the mail collaborator.
type LicenseData struct {
	LicenseID      string
	ToolName       string
	Vendor         string
	ExpirationDate time.Time
}

// ClientData is the recipient payload handed to the mail collaborator.
type ClientData struct {
	Name      string
	Email     string
	Phone     string
	GSTNumber string
}

// ExpiryMailer is the outbound email collaborator. SendExpiryNotice reports
// delivery with a boolean and may also return an error; Send delivers an ad
// hoc message for the operator test entrypoint.
type ExpiryMailer interface {
	SendExpiryNotice(license LicenseData, client ClientData, daysUntilExpiry int) (bool, error)
	Send(to, subject, html string) error
}

// NewMailerFromEnv picks the mail backend: MAIL_PROVIDER=ses selects Amazon
// SES, anything else the SMTP dialer.
func NewMailerFromEnv() (ExpiryMailer, error) {
	if strings.EqualFold(os.Getenv("MAIL_PROVIDER"), "ses") {
		return NewSESMailer(context.Background(), os.Getenv("AWS_REGION"), os.Getenv("SES_FROM"))
	}
	return SMTPMailer{}, nil
}

// SMTPMailer delivers through the SMTP dialer configured in config.
type SMTPMailer struct{}

func (SMTPMailer) SendExpiryNotice(license LicenseData, client ClientData, daysUntilExpiry int) (bool, error) {
	subject := expirySubject(license, daysUntilExpiry)
	html := buildExpiryEmailHTML(license, client, daysUntilExpiry)
	if err := config.SendMail([]string{client.Email}, subject, html); err != nil {
		return false, err
	}
	return true, nil
}

func (SMTPMailer) Send(to, subject, html string) error {
	return config.SendMail([]string{to}, subject, html)
}

// SESMailer delivers through Amazon SES.
type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	if from == "" {
		return nil, fmt.Errorf("ses mailer: SES_FROM is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("ses mailer: load aws config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

func (m *SESMailer) SendExpiryNotice(license LicenseData, client ClientData, daysUntilExpiry int) (bool, error) {
	subject := expirySubject(license, daysUntilExpiry)
	html := buildExpiryEmailHTML(license, client, daysUntilExpiry)
	if err := m.Send(client.Email, subject, html); err != nil {
		return false, err
	}
	return true, nil
}

func (m *SESMailer) Send(to, subject, html string) error {
	_, err := m.client.SendEmail(context.Background(), &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &sestypes.Body{
				Html: &sestypes.Content{Data: aws.String(html), Charset: aws.String("UTF-8")},
			},
		},
	})
	return err
}

func expirySubject(license LicenseData, daysUntilExpiry int) string {
	switch daysUntilExpiry {
	case 0:
		return fmt.Sprintf("License expires today: %s", license.ToolName)
	case 1:
		return fmt.Sprintf("License expires tomorrow: %s", license.ToolName)
	default:
		return fmt.Sprintf("License expires in %d days: %s", daysUntilExpiry, license.ToolName)
	}
}

func buildExpiryEmailHTML(license LicenseData, client ClientData, daysUntilExpiry int) string {
	name := strings.TrimSpace(client.Name)
	if name == "" {
		name = client.Email
	}

	vendor := strings.TrimSpace(license.Vendor)
	if vendor == "" {
		vendor = "-"
	}

	escapedName := template.HTMLEscapeString(name)
	escapedTool := template.HTMLEscapeString(license.ToolName)
	escapedVendor := template.HTMLEscapeString(vendor)
	expiresOn := license.ExpirationDate.Format("02/01/2006")

	var when string
	switch daysUntilExpiry {
	case 0:
		when = "today"
	case 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", daysUntilExpiry)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>License expiration notice</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px 24px 28px 24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">Dear %s,</p>
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">Your license for <strong>%s</strong> (vendor: %s) expires <strong>%s</strong>, on %s.</p>
    <p style="margin:0;font-size:16px;line-height:1.7;color:#111827;">Please contact us to renew it before the expiration date.</p>
  </div>
</div>
</body>
</html>`, escapedName, escapedTool, escapedVendor, when, expiresOn)
}

func buildTestEmailHTML(subject, message string) string {
	escapedSubject := template.HTMLEscapeString(subject)
	escapedMessage := template.HTMLEscapeString(strings.TrimSpace(message))
	escapedMessage = strings.ReplaceAll(strings.ReplaceAll(escapedMessage, "\r\n", "\n"), "\r", "\n")
	escapedMessage = strings.ReplaceAll(escapedMessage, "\n", "<br />")

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px;">
    <p style="margin:0;font-size:16px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>
  </div>
</div>
</body>
</html>`, escapedSubject, escapedMessage)
}
