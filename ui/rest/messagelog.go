package rest

import (
	domainMessageLog "github.com/AzielCF/az-evo-relay/domains/messagelog"
	"github.com/gofiber/fiber/v2"
)

type MessageLog struct {
	Service domainMessageLog.IMessageLogUsecase
}

func InitRestMessageLog(app fiber.Router, service domainMessageLog.IMessageLogUsecase) MessageLog {
	handler := MessageLog{Service: service}

	app.Get("/api/mensagens", handler.List)
	app.Delete("/api/mensagens/limpar", handler.Clear)

	return handler
}

// List answers with a bare JSON array, never null.
func (handler *MessageLog) List(c *fiber.Ctx) error {
	var request domainMessageLog.ListRequest
	request.Telefone = c.Query("telefone")

	entries := handler.Service.List(c.UserContext(), request)
	if entries == nil {
		entries = []domainMessageLog.Payload{}
	}
	return c.JSON(entries)
}

func (handler *MessageLog) Clear(c *fiber.Ctx) error {
	return c.JSON(handler.Service.Clear(c.UserContext()))
}
