package rest

import (
	"github.com/AzielCF/az-evo-relay/domains/health"
	"github.com/AzielCF/az-evo-relay/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MonitoringHandler struct {
	Service health.IHealthUsecase
}

// InitRestMonitoring exposes relay statistics and the Prometheus scrape endpoint.
func InitRestMonitoring(app fiber.Router, service health.IHealthUsecase) MonitoringHandler {
	h := MonitoringHandler{Service: service}

	app.Get("/api/monitor/stats", h.GetStats)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return h
}

func (h *MonitoringHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: "Relay stats",
		Results: h.Service.GetStats(c.UserContext()),
	})
}
