package send

import "context"

type SendOptions struct {
	Delay    int    `json:"delay"`
	Presence string `json:"presence"`
}

// OutboundMessage is the body of the gateway's sendText call.
type OutboundMessage struct {
	Number  string      `json:"number"`
	Options SendOptions `json:"options"`
	Text    string      `json:"text"`
}

// SendResponse is the subset of the gateway answer worth logging.
type SendResponse struct {
	Key struct {
		RemoteJID string `json:"remoteJid"`
		FromMe    bool   `json:"fromMe"`
		ID        string `json:"id"`
	} `json:"key"`
	Status string `json:"status"`
}

// IGateway performs the raw outbound call.
type IGateway interface {
	SendText(ctx context.Context, msg OutboundMessage) (SendResponse, error)
}

// ISendUsecase sends best-effort text replies. Failures are logged, never returned.
type ISendUsecase interface {
	SendText(ctx context.Context, number, text string) bool
}
