package validations

import (
	"context"

	domainSend "github.com/AzielCF/az-evo-relay/domains/send"
	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateSendMessage(ctx context.Context, request domainSend.OutboundMessage) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Number, validation.Required),
		validation.Field(&request.Text, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	err = validation.ValidateStructWithContext(ctx, &request.Options,
		validation.Field(&request.Options.Delay, validation.Min(0)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
