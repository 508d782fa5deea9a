package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/AzielCF/az-evo-relay/core/config"
	domainHealth "github.com/AzielCF/az-evo-relay/domains/health"
	domainMessageLog "github.com/AzielCF/az-evo-relay/domains/messagelog"
	"github.com/AzielCF/az-evo-relay/pkg/botmonitor"
	"github.com/AzielCF/az-evo-relay/pkg/msgworker"
	"github.com/dustin/go-humanize"
)

const (
	LivenessMessage     = "O Bot está ONLINE! 🟢"
	LivenessInstruction = "Não acesse /webhook pelo navegador. Configure isso na Evolution API."
)

type healthService struct {
	cfg        *config.Config
	startedAt  time.Time
	messageLog domainMessageLog.IMessageLogUsecase
	monitor    *botmonitor.Monitor
	pool       *msgworker.Pool
}

// NewHealthService reports liveness and relay statistics. pool may be nil when the relay
// runs synchronously.
func NewHealthService(cfg *config.Config, messageLog domainMessageLog.IMessageLogUsecase, monitor *botmonitor.Monitor, pool *msgworker.Pool) domainHealth.IHealthUsecase {
	return &healthService{
		cfg:        cfg,
		startedAt:  time.Now(),
		messageLog: messageLog,
		monitor:    monitor,
		pool:       pool,
	}
}

func (s *healthService) Liveness(ctx context.Context) domainHealth.LivenessResponse {
	return domainHealth.LivenessResponse{Message: LivenessMessage, Instruction: LivenessInstruction}
}

func (s *healthService) GetStats(ctx context.Context) domainHealth.StatsResponse {
	res := domainHealth.StatsResponse{
		Version:        s.cfg.App.Version,
		Instance:       s.cfg.Gateway.InstanceName,
		StartedAt:      s.startedAt,
		Uptime:         strings.TrimSpace(humanize.RelTime(s.startedAt, time.Now(), "", "")),
		MessageLogSize: s.messageLog.Size(),
		Settings:       s.cfg.GetAllSettings(),
		Monitor:        s.monitor.GetStats(),
	}
	if s.pool != nil {
		stats := s.pool.GetStats()
		res.WorkerPool = &stats
	}
	return res
}
