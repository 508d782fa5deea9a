package health

import (
	"context"
	"time"

	"github.com/AzielCF/az-evo-relay/pkg/botmonitor"
	"github.com/AzielCF/az-evo-relay/pkg/msgworker"
)

type LivenessResponse struct {
	Message     string `json:"mensagem"`
	Instruction string `json:"instrucao"`
}

type StatsResponse struct {
	Version        string               `json:"version"`
	Instance       string               `json:"instance"`
	StartedAt      time.Time            `json:"started_at"`
	Uptime         string               `json:"uptime"`
	MessageLogSize int                  `json:"message_log_size"`
	Settings       map[string]any       `json:"settings"`
	Monitor        botmonitor.Stats     `json:"monitor"`
	WorkerPool     *msgworker.PoolStats `json:"worker_pool,omitempty"`
}

type IHealthUsecase interface {
	Liveness(ctx context.Context) LivenessResponse
	GetStats(ctx context.Context) StatsResponse
}
