package rest

import (
	"encoding/json"
	"fmt"

	domainWebhook "github.com/AzielCF/az-evo-relay/domains/webhook"
	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const StatusWebhookReceived = "webhook recebido"

type Webhook struct {
	Service domainWebhook.IWebhookUsecase
}

func InitRestWebhook(app fiber.Router, service domainWebhook.IWebhookUsecase) Webhook {
	handler := Webhook{Service: service}

	app.Post("/webhook", handler.Receive)
	app.Post("/webhook/process", handler.Receive)
	app.Post("/webhook/process/messages-upsert", handler.Receive)

	return handler
}

// Receive always acknowledges a well-formed event with 200. The body is decoded directly
// so a gateway that omits Content-Type still gets through.
func (handler *Webhook) Receive(c *fiber.Ctx) error {
	var event domainWebhook.WebhookEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return respondError(c, pkgError.ValidationError(fmt.Sprintf("invalid webhook body: %v", err)))
	}

	result, err := handler.Service.ProcessEvent(c.UserContext(), event)
	if err != nil {
		return respondError(c, err)
	}

	logrus.WithFields(logrus.Fields{
		"event":    event.Event,
		"event_id": result.EventID,
		"action":   result.Action,
		"rule":     result.Rule,
	}).Info("[WEBHOOK] Event processed")

	return c.JSON(fiber.Map{
		"status": StatusWebhookReceived,
		"data":   event.Data,
	})
}
