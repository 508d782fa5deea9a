package middleware

import (
	"fmt"

	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	"github.com/AzielCF/az-evo-relay/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Recovery turns a panic in any handler into a ResponseData error body.
func Recovery() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			err := recover()
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"method":     ctx.Method(),
					"path":       ctx.Path(),
					"request_id": ctx.GetRespHeader(fiber.HeaderXRequestID),
				}).Errorf("[REST] Panic recovered: %v", err)

				genericErr, ok := err.(pkgError.GenericError)
				if !ok {
					genericErr = pkgError.InternalServerError(fmt.Sprintf("%v", err))
				}
				_ = ctx.Status(genericErr.StatusCode()).JSON(utils.ResponseData{
					Status:  genericErr.StatusCode(),
					Code:    genericErr.ErrCode(),
					Message: genericErr.Error(),
				})
			}
		}()

		return ctx.Next()
	}
}
