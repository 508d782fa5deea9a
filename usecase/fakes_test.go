package usecase

import (
	"context"
	"errors"
	"sync"

	domainMessageLog "github.com/AzielCF/az-evo-relay/domains/messagelog"
	domainSend "github.com/AzielCF/az-evo-relay/domains/send"
)

type fakeGateway struct {
	mu   sync.Mutex
	sent []domainSend.OutboundMessage
	err  error
	// failCanceled rejects sends on a cancelled context, like a real HTTP client.
	failCanceled bool
}

func (g *fakeGateway) SendText(ctx context.Context, msg domainSend.OutboundMessage) (domainSend.SendResponse, error) {
	var resp domainSend.SendResponse
	if g.failCanceled && ctx.Err() != nil {
		return resp, ctx.Err()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, msg)
	if g.err != nil {
		return resp, g.err
	}
	resp.Key.ID = "MSG-ID"
	return resp, nil
}

func (g *fakeGateway) Sent() []domainSend.OutboundMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domainSend.OutboundMessage, len(g.sent))
	copy(out, g.sent)
	return out
}

type forwardCall struct {
	EventID   string
	EventName string
	Payload   map[string]any
}

type fakeForwarder struct {
	mu    sync.Mutex
	calls []forwardCall
	fail  bool
}

func (f *fakeForwarder) Forward(ctx context.Context, eventID, eventName string, payload map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, forwardCall{EventID: eventID, EventName: eventName, Payload: payload})
	if f.fail {
		return errors.New("all webhook URLs failed")
	}
	return nil
}

func (f *fakeForwarder) Calls() []forwardCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]forwardCall, len(f.calls))
	copy(out, f.calls)
	return out
}

type recordingListener struct {
	mu      sync.Mutex
	logged  []int
	cleared []int
}

func (l *recordingListener) MessageLogged(payload domainMessageLog.Payload, size int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logged = append(l.logged, size)
}

func (l *recordingListener) MessagesCleared(removed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleared = append(l.cleared, removed)
}
