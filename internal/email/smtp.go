package email

import (
	"fmt"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail over SMTP via gomail.
type SMTPProvider struct {
	dialer   *gomail.Dialer
	from     string
	renderer TemplateRenderer
}

func NewSMTPProvider(cfg config.EmailConfig, renderer TemplateRenderer) (*SMTPProvider, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is not configured")
	}
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	return &SMTPProvider{
		dialer:   gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUsername, cfg.SMTPPassword),
		from:     from,
		renderer: renderer,
	}, nil
}

func (p *SMTPProvider) SendOTP(to, name, code string) error {
	return p.sendTemplate(to, "Your Thryfto verification code", TemplateOTP, TemplateData{
		"Name":          name,
		"Code":          code,
		"ExpiryMinutes": 10,
	})
}

func (p *SMTPProvider) SendPasswordResetOTP(to, name, code string) error {
	return p.sendTemplate(to, "Reset your Thryfto password", TemplatePasswordReset, TemplateData{
		"Name":          name,
		"Code":          code,
		"ExpiryMinutes": 10,
	})
}

func (p *SMTPProvider) SendWelcome(to, name string) error {
	return p.sendTemplate(to, "Welcome to Thryfto", TemplateWelcome, TemplateData{
		"Name": name,
	})
}

func (p *SMTPProvider) SendSaleCompleted(to, name, itemTitle string, coins int64) error {
	return p.sendTemplate(to, "Your item sold on Thryfto", TemplateSaleCompleted, TemplateData{
		"Name":      name,
		"ItemTitle": itemTitle,
		"Coins":     coins,
	})
}

func (p *SMTPProvider) sendTemplate(to, subject, templateName string, data TemplateData) error {
	body, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", p.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := p.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
