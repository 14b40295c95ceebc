// Package mailer は応募通知などのメール送信機能を提供する。
package mailer

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Mailer はメール送信のインターフェース。
type Mailer interface {
	// SendNewApplicationEmail は求人への新規応募を企業に通知するメールを送信する。
	SendNewApplicationEmail(to, jobTitle, candidateName, candidateEmail string) error
}

// SMTPConfig はSMTPメーラーの設定。
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer はgomailによるSMTP送信の実装。
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer はSMTPMailerを生成する。
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		from:   config.From,
	}
}

// SendNewApplicationEmail は求人への新規応募を企業に通知するメールを送信する。
func (m *SMTPMailer) SendNewApplicationEmail(to, jobTitle, candidateName, candidateEmail string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "New Application for "+jobTitle)
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>You have received a new application for <strong>%s</strong>.</p>"+
			"<p>Candidate: %s (%s)</p>"+
			"<p>Log in to your dashboard to review the application.</p>",
		jobTitle, candidateName, candidateEmail,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send application email: %w", err)
	}
	return nil
}

// NopMailer は何も送信しないメーラー。SMTP設定がない環境で使用する。
type NopMailer struct{}

// SendNewApplicationEmail はログ出力のみ行い、送信はスキップする。
func (NopMailer) SendNewApplicationEmail(to, jobTitle, candidateName, candidateEmail string) error {
	slog.Info("mailer disabled, skipping application email",
		slog.String("to", to),
		slog.String("job_title", jobTitle),
	)
	return nil
}

// compile-time interface checks
var (
	_ Mailer = (*SMTPMailer)(nil)
	_ Mailer = NopMailer{}
)
