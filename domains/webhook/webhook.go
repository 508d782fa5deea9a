package webhook

import (
	"context"
	"encoding/json"
)

const EventMessagesUpsert = "messages.upsert"

// Action describes what the relay did with an inbound event.
type Action string

const (
	ActionIgnored   Action = "ignored"   // not a messages.upsert event
	ActionFromMe    Action = "from_me"   // echo of a message sent by the bot itself
	ActionNoText    Action = "no_text"   // upsert without a text body
	ActionReplied   Action = "replied"   // keyword reply sent (or attempted)
	ActionForwarded Action = "forwarded" // raw payload forwarded downstream
	ActionQueued    Action = "queued"    // handed to the worker pool
)

// WebhookEvent is the envelope the gateway posts for every occurrence.
// Fields the relay does not consume are kept in the raw copy so the message log and
// the downstream forward see exactly what the gateway sent.
type WebhookEvent struct {
	Event    string         `json:"event"`
	Instance string         `json:"instance,omitempty"`
	Data     map[string]any `json:"data"`

	raw map[string]any
}

func (e *WebhookEvent) UnmarshalJSON(b []byte) error {
	type alias WebhookEvent
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = WebhookEvent(a)
	e.raw = raw
	return nil
}

// Payload returns the event as a generic mapping, preferring the raw body received.
func (e WebhookEvent) Payload() map[string]any {
	if e.raw != nil {
		return e.raw
	}
	payload := map[string]any{
		"event": e.Event,
		"data":  e.Data,
	}
	if e.Instance != "" {
		payload["instance"] = e.Instance
	}
	return payload
}

type MessageKey struct {
	RemoteJID string `json:"remoteJid"`
	FromMe    bool   `json:"fromMe"`
	ID        string `json:"id,omitempty"`
}

// InboundMessage holds the fields the relay consumes from a messages.upsert event.
type InboundMessage struct {
	Key      MessageKey `json:"key"`
	PushName string     `json:"pushName,omitempty"`
	Text     string     `json:"text"`
}

// Message extracts the consumed fields from Data. Missing or mistyped fields yield
// zero values.
func (e WebhookEvent) Message() InboundMessage {
	var msg InboundMessage
	if e.Data == nil {
		return msg
	}

	if key, ok := e.Data["key"].(map[string]any); ok {
		msg.Key.RemoteJID, _ = key["remoteJid"].(string)
		msg.Key.FromMe, _ = key["fromMe"].(bool)
		msg.Key.ID, _ = key["id"].(string)
	}
	msg.PushName, _ = e.Data["pushName"].(string)

	content, ok := e.Data["message"].(map[string]any)
	if !ok {
		return msg
	}
	if text, _ := content["conversation"].(string); text != "" {
		msg.Text = text
		return msg
	}
	if ext, ok := content["extendedTextMessage"].(map[string]any); ok {
		msg.Text, _ = ext["text"].(string)
	}
	return msg
}

type ProcessResult struct {
	EventID string `json:"event_id"`
	Action  Action `json:"action"`
	Rule    string `json:"rule,omitempty"`
}

type IWebhookUsecase interface {
	ProcessEvent(ctx context.Context, event WebhookEvent) (ProcessResult, error)
}

// IForwarder delivers a raw event to the downstream consumers.
type IForwarder interface {
	Forward(ctx context.Context, eventID, eventName string, payload map[string]any) error
}
