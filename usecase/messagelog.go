package usecase

import (
	"context"
	"fmt"
	"strings"

	domainMessageLog "github.com/AzielCF/az-evo-relay/domains/messagelog"
	pkgUtils "github.com/AzielCF/az-evo-relay/pkg/utils"
)

const StatusMessagesCleared = "mensagens limpas"

type serviceMessageLog struct {
	store     domainMessageLog.IMessageLogStore
	listeners []domainMessageLog.IMessageLogListener
}

func NewMessageLogService(store domainMessageLog.IMessageLogStore, listeners ...domainMessageLog.IMessageLogListener) domainMessageLog.IMessageLogUsecase {
	return &serviceMessageLog{store: store, listeners: listeners}
}

func (service *serviceMessageLog) Record(ctx context.Context, payload domainMessageLog.Payload) {
	size := service.store.Append(ctx, payload)
	for _, l := range service.listeners {
		l.MessageLogged(payload, size)
	}
}

// List returns the stored payloads in arrival order. A non-empty telefone keeps only the
// entries whose sender (data.key.remoteJid, full or user part) or legacy top-level
// "telefone" field matches it.
func (service *serviceMessageLog) List(ctx context.Context, request domainMessageLog.ListRequest) []domainMessageLog.Payload {
	entries := service.store.List(ctx)
	phone := strings.TrimSpace(request.Telefone)
	if phone == "" {
		return entries
	}

	filtered := make([]domainMessageLog.Payload, 0, len(entries))
	for _, p := range entries {
		if payloadMatchesPhone(p, phone) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (service *serviceMessageLog) Clear(ctx context.Context) domainMessageLog.ClearResponse {
	removed := service.store.Clear(ctx)
	for _, l := range service.listeners {
		l.MessagesCleared(removed)
	}
	return domainMessageLog.ClearResponse{Status: StatusMessagesCleared, Removed: removed}
}

func (service *serviceMessageLog) Size() int {
	return service.store.Len()
}

func payloadMatchesPhone(p domainMessageLog.Payload, phone string) bool {
	if legacy, ok := p["telefone"]; ok && legacy != nil && fmt.Sprint(legacy) == phone {
		return true
	}
	data, _ := p["data"].(map[string]any)
	key, _ := data["key"].(map[string]any)
	jid, _ := key["remoteJid"].(string)
	return pkgUtils.PhoneMatchesJID(phone, jid)
}
