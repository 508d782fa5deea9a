package rest

import (
	domainInstance "github.com/AzielCF/az-evo-relay/domains/instance"
	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	"github.com/gofiber/fiber/v2"
)

type Instance struct {
	Service domainInstance.IInstanceUsecase
}

func InitRestInstance(app fiber.Router, service domainInstance.IInstanceUsecase) Instance {
	handler := Instance{Service: service}

	app.Get("/webhook/find/:instance", handler.Find)

	return handler
}

func (handler *Instance) Find(c *fiber.Ctx) error {
	var request domainInstance.FindRequest
	if err := c.ParamsParser(&request); err != nil {
		return respondError(c, pkgError.ValidationError(err.Error()))
	}
	request.APIKey = c.Get("apikey")

	res, err := handler.Service.Find(c.UserContext(), request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
