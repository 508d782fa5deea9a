package rest

import (
	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	"github.com/AzielCF/az-evo-relay/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// respondError renders err as a ResponseData. Untyped errors become a 500.
func respondError(c *fiber.Ctx, err error) error {
	genericErr, ok := err.(pkgError.GenericError)
	if !ok {
		genericErr = pkgError.InternalServerError(err.Error())
	}
	return c.Status(genericErr.StatusCode()).JSON(utils.ResponseData{
		Status:  genericErr.StatusCode(),
		Code:    genericErr.ErrCode(),
		Message: genericErr.Error(),
	})
}
