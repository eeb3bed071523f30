// Package crm records qualified leads locally and forwards them to the
// external CRM through its email-based intake.
package crm

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// ForwardPayload is the lead shape sent to the CRM intake address.
type ForwardPayload struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Interest      string
	Neighborhoods string
	Message       string
	AgentName     string
	LeadType      string
}

// Mailer delivers a lead payload as a transactional email.
type Mailer interface {
	Send(ctx context.Context, payload ForwardPayload) error
}

// SMTPConfig configures the CRM mail transport.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	// IntakeAddress is the CRM's fixed lead-intake mailbox.
	IntakeAddress string `yaml:"intake_address"`
}

// SMTPMailer sends lead emails over SMTP.
type SMTPMailer struct {
	client *mail.Client
	cfg    SMTPConfig
}

// NewSMTPMailer creates the CRM mail transport.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return &SMTPMailer{client: client, cfg: cfg}, nil
}

// Send delivers one lead to the intake mailbox.
func (m *SMTPMailer) Send(ctx context.Context, payload ForwardPayload) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.cfg.IntakeAddress); err != nil {
		return fmt.Errorf("invalid intake address: %w", err)
	}
	msg.Subject(fmt.Sprintf("%s: %s %s (%s)", payload.LeadType, payload.FirstName, payload.LastName, payload.Interest))
	msg.SetBodyString(mail.TypeTextPlain, formatLeadBody(payload))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send lead email: %w", err)
	}
	return nil
}

func formatLeadBody(p ForwardPayload) string {
	return fmt.Sprintf(
		"Name: %s %s\nEmail: %s\nPhone: %s\nInterest: %s\nNeighborhoods: %s\nAgent: %s\nLead type: %s\n\n%s\n",
		p.FirstName, p.LastName, p.Email, p.Phone, p.Interest, p.Neighborhoods, p.AgentName, p.LeadType, p.Message,
	)
}
