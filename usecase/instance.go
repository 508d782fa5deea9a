package usecase

import (
	"context"
	"crypto/subtle"

	"github.com/AzielCF/az-evo-relay/core/config"
	domainInstance "github.com/AzielCF/az-evo-relay/domains/instance"
	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	"github.com/AzielCF/az-evo-relay/validations"
	"github.com/sirupsen/logrus"
)

type serviceInstance struct {
	apiKey       string
	instanceName string
}

func NewInstanceService(cfg config.GatewayConfig) domainInstance.IInstanceUsecase {
	return &serviceInstance{apiKey: cfg.APIKey, instanceName: cfg.InstanceName}
}

// Find answers the gateway's reachability check. The key is checked before the instance
// so an unauthorized caller cannot probe instance names.
func (service *serviceInstance) Find(ctx context.Context, request domainInstance.FindRequest) (domainInstance.FindResponse, error) {
	if subtle.ConstantTimeCompare([]byte(request.APIKey), []byte(service.apiKey)) != 1 {
		logrus.WithField("instance", request.Instance).Warn("[INSTANCE] Rejected verification with invalid apikey")
		return domainInstance.FindResponse{}, pkgError.UnauthorizedError("invalid apikey")
	}
	if err := validations.ValidateFindInstance(ctx, request); err != nil {
		return domainInstance.FindResponse{}, err
	}
	if request.Instance != service.instanceName {
		return domainInstance.FindResponse{}, pkgError.NotFoundError("instância não encontrada")
	}
	return domainInstance.FindResponse{Status: domainInstance.StatusFound}, nil
}
