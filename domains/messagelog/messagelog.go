package messagelog

import "context"

type Payload = map[string]any

type ListRequest struct {
	Telefone string `json:"telefone" query:"telefone"`
}

type ClearResponse struct {
	Status  string `json:"status"`
	Removed int    `json:"removidas"`
}

// IMessageLogStore is an append-only, process-lifetime sequence of payloads.
type IMessageLogStore interface {
	Append(ctx context.Context, payload Payload) int
	List(ctx context.Context) []Payload
	Clear(ctx context.Context) int
	Len() int
}

type IMessageLogUsecase interface {
	Record(ctx context.Context, payload Payload)
	List(ctx context.Context, request ListRequest) []Payload
	Clear(ctx context.Context) ClearResponse
	Size() int
}

// IMessageLogListener is notified after the log changes. Implementations must not block.
type IMessageLogListener interface {
	MessageLogged(payload Payload, size int)
	MessagesCleared(removed int)
}
