package validations

import (
	"context"

	domainWebhook "github.com/AzielCF/az-evo-relay/domains/webhook"
	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateWebhookEvent(ctx context.Context, request domainWebhook.WebhookEvent) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Event, validation.Required),
		validation.Field(&request.Data, validation.NotNil),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
