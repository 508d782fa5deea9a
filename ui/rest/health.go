package rest

import (
	"github.com/AzielCF/az-evo-relay/domains/health"
	"github.com/gofiber/fiber/v2"
)

type Health struct {
	Service health.IHealthUsecase
}

func InitRestHealth(app fiber.Router, service health.IHealthUsecase) Health {
	handler := Health{Service: service}

	app.Get("/", handler.Liveness)

	return handler
}

func (h *Health) Liveness(c *fiber.Ctx) error {
	return c.JSON(h.Service.Liveness(c.UserContext()))
}
