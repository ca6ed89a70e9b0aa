package ingest

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"schedulestorm-backend/internal/components/chrono"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type AlertConfig struct {
	Smtp       SmtpConfig `json:"smtp"`
	Recipients []string   `json:"recipients"`
}

// EmailAlerter mails the configured recipients when a scrape cycle fails.
type EmailAlerter struct {
	config AlertConfig
	clock  chrono.TimeAPI
}

// NewEmailAlerter returns nil when there is nobody to alert.
func NewEmailAlerter(config AlertConfig, clock chrono.TimeAPI) *EmailAlerter {
	if config.Smtp.Server == "" || len(config.Recipients) == 0 {
		return nil
	}
	return &EmailAlerter{config: config, clock: clock}
}

func (a *EmailAlerter) Alert(ctx context.Context, uni string, cause error) error {
	if a == nil {
		return nil
	}
	_, span := tracer.Start(ctx, "Alert")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Schedule Storm <%s>", a.config.Smtp.EmailAddress)
	mail.To = a.config.Recipients
	mail.Subject = fmt.Sprintf("Scrape failed: %s", uni)

	body := fmt.Sprintf(`The scrape cycle of %s failed at %s.

%v

The last successfully scraped catalog is still being served.`,
		uni,
		a.clock.Now().Format("2006-01-02 15:04:05 MST"),
		cause,
	)
	mail.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", a.config.Smtp.Server, a.config.Smtp.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", a.config.Smtp.EmailAddress, a.config.Smtp.Password, a.config.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}
