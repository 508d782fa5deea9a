package usecase

import (
	"context"
	"time"

	"github.com/AzielCF/az-evo-relay/botengine"
	"github.com/AzielCF/az-evo-relay/core/config"
	domainSend "github.com/AzielCF/az-evo-relay/domains/send"
	"github.com/AzielCF/az-evo-relay/validations"
	"github.com/sirupsen/logrus"
)

type serviceSend struct {
	gateway  domainSend.IGateway
	delay    int
	presence string
	humanize bool
}

func NewSendService(gateway domainSend.IGateway, cfg config.GatewayConfig) domainSend.ISendUsecase {
	return &serviceSend{
		gateway:  gateway,
		delay:    cfg.SendDelayMs,
		presence: cfg.Presence,
		humanize: cfg.Humanize,
	}
}

// SendText makes one delivery attempt and reports whether the gateway accepted it.
// Errors are logged here and never returned.
func (service serviceSend) SendText(ctx context.Context, number, text string) bool {
	delay := service.delay
	if service.humanize {
		delay = botengine.DefaultProfile.TypingDelayMs(text)
	}
	msg := domainSend.OutboundMessage{
		Number:  number,
		Options: domainSend.SendOptions{Delay: delay, Presence: service.presence},
		Text:    text,
	}
	if err := validations.ValidateSendMessage(ctx, msg); err != nil {
		logrus.WithError(err).Warn("[EVOLUTION] Refusing to send invalid message")
		return false
	}

	start := time.Now()
	resp, err := service.gateway.SendText(ctx, msg)
	fields := logrus.Fields{
		"number":      number,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		logrus.WithFields(fields).WithError(err).Error("[EVOLUTION] Failed to send message")
		return false
	}

	if resp.Key.ID != "" {
		fields["message_id"] = resp.Key.ID
	}
	logrus.WithFields(fields).Info("[EVOLUTION] Message sent")
	return true
}
