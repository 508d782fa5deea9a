package validations

import (
	"context"

	domainInstance "github.com/AzielCF/az-evo-relay/domains/instance"
	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateFindInstance(ctx context.Context, request domainInstance.FindRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Instance, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
