package email

import (
	"github.com/Yashdhankecha/Thryfto-sub001/internal/logger"
)

// LogProvider writes mail to the log instead of sending it. Used in
// development where no SMTP credentials are configured.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) SendOTP(to, name, code string) error {
	logger.Info("email (log mode): verification code",
		"to", to,
		"code", code,
	)
	return nil
}

func (p *LogProvider) SendPasswordResetOTP(to, name, code string) error {
	logger.Info("email (log mode): password reset code",
		"to", to,
		"code", code,
	)
	return nil
}

func (p *LogProvider) SendWelcome(to, name string) error {
	logger.Info("email (log mode): welcome", "to", to)
	return nil
}

func (p *LogProvider) SendSaleCompleted(to, name, itemTitle string, coins int64) error {
	logger.Info("email (log mode): sale completed",
		"to", to,
		"item", itemTitle,
		"coins", coins,
	)
	return nil
}
