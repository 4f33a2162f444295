package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"tms/internal/app/config"
	"tms/internal/app/service"

	"github.com/sirupsen/logrus"
)

// Sender отправляет уведомления о событиях по тендерам через SMTP.
// Без настроенного SMTP_HOST письма только пишутся в лог — так сервис
// работает в dev-окружении без почтового сервера
type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) SendTenderEmail(msg service.EmailMessage) error {
	to := msg.To
	if len(to) == 0 {
		to = s.cfg.AccountsTeam
	}
	if len(to) == 0 {
		logrus.WithFields(logrus.Fields{
			"tender_id": msg.TenderID,
			"event":     msg.EventType,
		}).Warn("email skipped: no recipients configured")
		return nil
	}

	if s.cfg.Host == "" {
		logrus.WithFields(logrus.Fields{
			"tender_id": msg.TenderID,
			"event":     msg.EventType,
			"to":        to,
			"subject":   msg.Subject,
		}).Info("email logged (smtp not configured)")
		return nil
	}

	body := buildBody(msg)
	headers := []string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
	}
	if len(msg.Cc) > 0 {
		headers = append(headers, "Cc: "+strings.Join(msg.Cc, ", "))
	}
	payload := []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	recipients := append(append([]string{}, to...), msg.Cc...)
	if err := smtp.SendMail(addr, auth, s.cfg.From, recipients, payload); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"tender_id": msg.TenderID,
		"event":     msg.EventType,
		"to":        to,
	}).Info("email sent")
	return nil
}

func buildBody(msg service.EmailMessage) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Event: %s\r\n", msg.EventType))
	if msg.TenderID > 0 {
		b.WriteString(fmt.Sprintf("Tender: %d\r\n", msg.TenderID))
	}
	for k, v := range msg.Data {
		b.WriteString(fmt.Sprintf("%s: %v\r\n", k, v))
	}
	return b.String()
}
