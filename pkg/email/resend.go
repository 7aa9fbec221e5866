package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	templatesDir string
	logger       *zap.Logger
}

func NewEmailService(logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{
		client:       resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:         os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName:     os.Getenv("EMAIL_FROM_NAME"),
		templatesDir: "pkg/email/templates",
		logger:       logger,
	}
}

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	templateData := map[string]interface{}{
		"FullName": fullName,
		"Email":    email,
		"Year":     time.Now().Year(),
	}

	html, err := s.parseTemplate("welcome.html", templateData)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to Dersapp!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send welcome email",
			zap.String("email", email),
			zap.Error(err))
		return err
	}

	s.logger.Info("welcome email sent",
		zap.String("email", email),
		zap.String("resend_id", resp.Id))
	return nil
}

// SendPaymentReceiptEmail notifies the student that a package purchase
// has been completed.
func (s *EmailService) SendPaymentReceiptEmail(email, fullName, packageName string, amount float64) error {
	templateData := map[string]interface{}{
		"FullName":    fullName,
		"PackageName": packageName,
		"Amount":      fmt.Sprintf("%.2f TL", amount),
		"Year":        time.Now().Year(),
	}

	html, err := s.parseTemplate("payment-receipt.html", templateData)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Your Dersapp payment receipt",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send payment receipt email",
			zap.String("email", email),
			zap.Error(err))
		return err
	}

	s.logger.Info("payment receipt email sent",
		zap.String("email", email),
		zap.String("resend_id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(name string, data map[string]interface{}) (string, error) {
	tmpl, err := template.ParseFiles(filepath.Join(s.templatesDir, name))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
