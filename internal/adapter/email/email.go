package email

import (
	"gopkg.in/gomail.v2"

	"ticketdesk/internal/pkg/config"
	"ticketdesk/internal/pkg/logger"

	"go.uber.org/zap"
)

// Mailer 邮件通知适配器
type Mailer interface {
	// Send 发送邮件, 未启用时静默跳过
	Send(to, subject, body string) error
}

type mailer struct {
	cfg *config.EmailConfig
}

// NewMailer 创建邮件通知适配器
func NewMailer(cfg *config.EmailConfig) Mailer {
	return &mailer{cfg: cfg}
}

func (m *mailer) Send(to, subject, body string) error {
	if !m.cfg.Enabled {
		logger.Debug("邮件通知已禁用, 跳过发送",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		logger.Warn("邮件发送失败",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	return nil
}
