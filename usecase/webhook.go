package usecase

import (
	"context"
	"time"

	"github.com/AzielCF/az-evo-relay/botengine"
	"github.com/AzielCF/az-evo-relay/core/config"
	domainMessageLog "github.com/AzielCF/az-evo-relay/domains/messagelog"
	domainSend "github.com/AzielCF/az-evo-relay/domains/send"
	domainWebhook "github.com/AzielCF/az-evo-relay/domains/webhook"
	"github.com/AzielCF/az-evo-relay/pkg/botmonitor"
	"github.com/AzielCF/az-evo-relay/pkg/msgworker"
	"github.com/AzielCF/az-evo-relay/pkg/utils"
	"github.com/AzielCF/az-evo-relay/validations"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type serviceWebhook struct {
	cfg        config.WebhookConfig
	instance   string
	engine     *botengine.Engine
	send       domainSend.ISendUsecase
	forwarder  domainWebhook.IForwarder
	messageLog domainMessageLog.IMessageLogUsecase
	monitor    *botmonitor.Monitor
	pool       *msgworker.Pool
}

type WebhookDeps struct {
	Config     config.WebhookConfig
	Instance   string
	Engine     *botengine.Engine
	Send       domainSend.ISendUsecase
	Forwarder  domainWebhook.IForwarder
	MessageLog domainMessageLog.IMessageLogUsecase
	Monitor    *botmonitor.Monitor
	// Pool is only used when Config.Async is set.
	Pool *msgworker.Pool
}

func NewWebhookService(deps WebhookDeps) domainWebhook.IWebhookUsecase {
	engine := deps.Engine
	if engine == nil {
		engine = botengine.NewDefaultEngine()
	}
	monitor := deps.Monitor
	if monitor == nil {
		monitor = botmonitor.New(0)
	}
	return &serviceWebhook{
		cfg:        deps.Config,
		instance:   deps.Instance,
		engine:     engine,
		send:       deps.Send,
		forwarder:  deps.Forwarder,
		messageLog: deps.MessageLog,
		monitor:    monitor,
		pool:       deps.Pool,
	}
}

// ProcessEvent validates and routes one gateway event. Only a malformed event is an
// error; delivery failures are logged and recorded on the monitor.
func (service *serviceWebhook) ProcessEvent(ctx context.Context, event domainWebhook.WebhookEvent) (domainWebhook.ProcessResult, error) {
	if err := validations.ValidateWebhookEvent(ctx, event); err != nil {
		return domainWebhook.ProcessResult{}, err
	}

	result := domainWebhook.ProcessResult{EventID: uuid.NewString()}
	instanceID := event.Instance
	if instanceID == "" {
		instanceID = service.instance
	}

	if event.Event != domainWebhook.EventMessagesUpsert {
		result.Action = domainWebhook.ActionIgnored
		service.recordInbound(result, instanceID, "", event.Event, botmonitor.StatusSkipped)
		return result, nil
	}

	msg := event.Message()
	if msg.Key.FromMe && service.cfg.IgnoreFromMe {
		result.Action = domainWebhook.ActionFromMe
		service.recordInbound(result, instanceID, msg.Key.RemoteJID, event.Event, botmonitor.StatusSkipped)
		return result, nil
	}
	if msg.Text == "" {
		result.Action = domainWebhook.ActionNoText
		service.recordInbound(result, instanceID, msg.Key.RemoteJID, event.Event, botmonitor.StatusSkipped)
		return result, nil
	}

	service.messageLog.Record(ctx, event.Payload())
	service.recordInbound(result, instanceID, msg.Key.RemoteJID, event.Event, botmonitor.StatusOK)

	logrus.WithFields(logrus.Fields{
		"event_id": result.EventID,
		"instance": instanceID,
		"from":     msg.Key.RemoteJID,
		"mode":     service.cfg.Mode,
	}).Debug("[WEBHOOK] Message received")

	if service.cfg.Async && service.pool != nil {
		job := msgworker.Job{
			InstanceID: instanceID,
			ChatJID:    msg.Key.RemoteJID,
			Handler: func(jobCtx context.Context) error {
				_, err := service.relay(jobCtx, result.EventID, instanceID, event, msg)
				return err
			},
		}
		if service.pool.TryDispatch(job) {
			result.Action = domainWebhook.ActionQueued
			return result, nil
		}
		logrus.WithField("event_id", result.EventID).Warn("[WEBHOOK] Worker pool unavailable, relaying inline")
	}

	outcome, err := service.relay(context.WithoutCancel(ctx), result.EventID, instanceID, event, msg)
	if err != nil {
		logrus.WithError(err).WithField("event_id", result.EventID).Error("[WEBHOOK] Relay failed")
	}
	result.Action = outcome.Action
	result.Rule = outcome.Rule
	return result, nil
}

// relay performs the reply and/or forward for one text message. The returned error is
// the forward error, if any; reply failures are already logged by the send usecase.
func (service *serviceWebhook) relay(ctx context.Context, eventID, instanceID string, event domainWebhook.WebhookEvent, msg domainWebhook.InboundMessage) (domainWebhook.ProcessResult, error) {
	out := domainWebhook.ProcessResult{EventID: eventID}
	var reply botengine.BotOutput

	if service.cfg.Replies() {
		reply = service.engine.Reply(botengine.BotInput{
			SenderID:   msg.Key.RemoteJID,
			InstanceID: instanceID,
			Text:       msg.Text,
			TraceID:    eventID,
		})

		start := time.Now()
		ok := service.send.SendText(ctx, msg.Key.RemoteJID, reply.Text)
		status, errMsg := botmonitor.StatusOK, ""
		if !ok {
			status, errMsg = botmonitor.StatusError, "send failed"
		}
		service.monitor.Record(botmonitor.Event{
			TraceID:    eventID,
			InstanceID: instanceID,
			ChatJID:    msg.Key.RemoteJID,
			Stage:      botmonitor.StageReply,
			Kind:       reply.Rule,
			Status:     status,
			Error:      errMsg,
			DurationMs: time.Since(start).Milliseconds(),
		})
		out.Action = domainWebhook.ActionReplied
		out.Rule = reply.Rule
	}

	if !service.cfg.Forwards() {
		return out, nil
	}

	if reply.Stop {
		service.monitor.Record(botmonitor.Event{
			TraceID:    eventID,
			InstanceID: instanceID,
			ChatJID:    msg.Key.RemoteJID,
			Stage:      botmonitor.StageForward,
			Kind:       reply.Rule,
			Status:     botmonitor.StatusSkipped,
		})
		return out, nil
	}

	start := time.Now()
	err := service.forwarder.Forward(ctx, eventID, event.Event, event.Payload())
	ev := botmonitor.Event{
		TraceID:    eventID,
		InstanceID: instanceID,
		ChatJID:    msg.Key.RemoteJID,
		Stage:      botmonitor.StageForward,
		Kind:       event.Event,
		Status:     botmonitor.StatusOK,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		ev.Status = botmonitor.StatusError
		ev.Error = err.Error()
	}
	service.monitor.Record(ev)

	if out.Action == "" {
		out.Action = domainWebhook.ActionForwarded
	}
	return out, err
}

func (service *serviceWebhook) recordInbound(result domainWebhook.ProcessResult, instanceID, chat, kind, status string) {
	ev := botmonitor.Event{
		TraceID:    result.EventID,
		InstanceID: instanceID,
		ChatJID:    chat,
		Stage:      botmonitor.StageInbound,
		Kind:       kind,
		Status:     status,
	}
	group := utils.IsGroupJID(chat)
	if result.Action != "" || group {
		ev.Metadata = map[string]string{}
	}
	if result.Action != "" {
		ev.Metadata["action"] = string(result.Action)
	}
	if group {
		ev.Metadata["chat_type"] = "group"
	}
	service.monitor.Record(ev)
}
