package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AzielCF/az-evo-relay/botengine"
	"github.com/AzielCF/az-evo-relay/core/config"
	domainSend "github.com/AzielCF/az-evo-relay/domains/send"
	"github.com/AzielCF/az-evo-relay/infrastructure/evolution"
	"github.com/AzielCF/az-evo-relay/infrastructure/forwarder"
	infraMessageLog "github.com/AzielCF/az-evo-relay/infrastructure/messagelog"
	"github.com/AzielCF/az-evo-relay/pkg/botmonitor"
	"github.com/AzielCF/az-evo-relay/ui/rest/middleware"
	"github.com/AzielCF/az-evo-relay/usecase"
	"github.com/gofiber/fiber/v2"
)

// gatewayStub records every sendText call made against it.
type gatewayStub struct {
	mu   sync.Mutex
	sent []domainSend.OutboundMessage
	keys []string
}

func (g *gatewayStub) handler(w http.ResponseWriter, r *http.Request) {
	var msg domainSend.OutboundMessage
	_ = json.NewDecoder(r.Body).Decode(&msg)
	g.mu.Lock()
	g.sent = append(g.sent, msg)
	g.keys = append(g.keys, r.Header.Get("apikey"))
	g.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"status":"PENDING"}`))
}

func (g *gatewayStub) Sent() []domainSend.OutboundMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domainSend.OutboundMessage(nil), g.sent...)
}

type testApp struct {
	app        *fiber.App
	gateway    *gatewayStub
	downstream *hitCounter
}

type hitCounter struct {
	mu sync.Mutex
	n  int
}

func (c *hitCounter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *hitCounter) get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func newTestApp(t *testing.T, mode string) *testApp {
	t.Helper()

	gw := &gatewayStub{}
	gwSrv := httptest.NewServer(http.HandlerFunc(gw.handler))
	t.Cleanup(gwSrv.Close)

	downstream := &hitCounter{}
	dsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downstream.inc()
	}))
	t.Cleanup(dsSrv.Close)

	cfg := &config.Config{
		App: config.AppConfig{Version: "test"},
		Gateway: config.GatewayConfig{
			BaseURL:      gwSrv.URL,
			APIKey:       "secret-key",
			InstanceName: "lucas",
			Timeout:      2 * time.Second,
			SendDelayMs:  1200,
			Presence:     "composing",
		},
		Webhook: config.WebhookConfig{Mode: mode, IgnoreFromMe: true},
		Forward: config.ForwardConfig{URLs: []string{dsSrv.URL}, Timeout: 2 * time.Second},
	}

	client := evolution.NewClient(cfg.Gateway)
	t.Cleanup(client.Close)

	monitor := botmonitor.New(20)
	messageLog := usecase.NewMessageLogService(infraMessageLog.NewMemoryStore())
	webhookService := usecase.NewWebhookService(usecase.WebhookDeps{
		Config:     cfg.Webhook,
		Instance:   cfg.Gateway.InstanceName,
		Engine:     botengine.NewDefaultEngine(),
		Send:       usecase.NewSendService(client, cfg.Gateway),
		Forwarder:  forwarder.New(cfg.Forward),
		MessageLog: messageLog,
		Monitor:    monitor,
	})

	app := fiber.New()
	app.Use(middleware.Recovery())
	healthService := usecase.NewHealthService(cfg, messageLog, monitor, nil)
	InitRestHealth(app, healthService)
	InitRestMonitoring(app, healthService)
	InitRestWebhook(app, webhookService)
	InitRestInstance(app, usecase.NewInstanceService(cfg.Gateway))
	InitRestMessageLog(app, messageLog)

	return &testApp{app: app, gateway: gw, downstream: downstream}
}

func (ta *testApp) do(t *testing.T, method, path, body string, headers map[string]string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := ta.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

const menuEvent = `{"event":"messages.upsert","data":{"key":{"remoteJid":"5511999","fromMe":false},"message":{"conversation":"menu"}}}`

func TestWebhook_MenuRepliesAndAcknowledges(t *testing.T) {
	ta := newTestApp(t, config.ModeReply)

	status, body := ta.do(t, http.MethodPost, "/webhook", menuEvent, nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, body)
	}

	var ack struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if ack.Status != "webhook recebido" {
		t.Fatalf("unexpected ack status %q", ack.Status)
	}
	if _, ok := ack.Data["key"]; !ok {
		t.Fatalf("expected data to be echoed, got %#v", ack.Data)
	}

	sent := ta.gateway.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one send, got %d", len(sent))
	}
	if sent[0].Number != "5511999" || sent[0].Text != "1. Planos\n2. Suporte\n3. Sair" {
		t.Fatalf("unexpected send %+v", sent[0])
	}
	if sent[0].Options.Delay != 1200 || sent[0].Options.Presence != "composing" {
		t.Fatalf("unexpected options %+v", sent[0].Options)
	}
	if ta.gateway.keys[0] != "secret-key" {
		t.Fatalf("expected apikey header, got %q", ta.gateway.keys[0])
	}
}

func TestWebhook_Aliases(t *testing.T) {
	ta := newTestApp(t, config.ModeReply)

	for _, path := range []string{"/webhook/process", "/webhook/process/messages-upsert"} {
		if status, body := ta.do(t, http.MethodPost, path, menuEvent, nil); status != http.StatusOK {
			t.Fatalf("%s: unexpected status %d: %s", path, status, body)
		}
	}
	if n := len(ta.gateway.Sent()); n != 2 {
		t.Fatalf("expected 2 sends, got %d", n)
	}
}

func TestWebhook_MalformedBody(t *testing.T) {
	ta := newTestApp(t, config.ModeReply)

	for _, body := range []string{`{not json`, `{"data":{}}`, `{"event":"messages.upsert"}`, `{"event":"x","data":[]}`} {
		status, _ := ta.do(t, http.MethodPost, "/webhook", body, nil)
		if status != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, status)
		}
	}

	if n := len(ta.gateway.Sent()); n != 0 {
		t.Fatalf("expected no send, got %d", n)
	}
	_, list := ta.do(t, http.MethodGet, "/api/mensagens", "", nil)
	if string(list) != "[]" {
		t.Fatalf("expected empty log, got %s", list)
	}
}

func TestWebhook_NonUpsertAcknowledged(t *testing.T) {
	ta := newTestApp(t, config.ModeReply)

	status, body := ta.do(t, http.MethodPost, "/webhook", `{"event":"connection.update","data":{"state":"open"}}`, nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, body)
	}
	if n := len(ta.gateway.Sent()); n != 0 {
		t.Fatalf("expected no send, got %d", n)
	}
}

func TestWebhook_ForwardMode(t *testing.T) {
	ta := newTestApp(t, config.ModeForward)

	if status, _ := ta.do(t, http.MethodPost, "/webhook", menuEvent, nil); status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	if n := ta.downstream.get(); n != 1 {
		t.Fatalf("expected one downstream POST, got %d", n)
	}
	if n := len(ta.gateway.Sent()); n != 0 {
		t.Fatalf("expected no send, got %d", n)
	}
}

func TestInstance_Find(t *testing.T) {
	ta := newTestApp(t, config.ModeReply)

	status, body := ta.do(t, http.MethodGet, "/webhook/find/lucas", "", map[string]string{"apikey": "secret-key"})
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, body)
	}
	if !bytes.Equal(body, []byte(`{"status":"instância encontrada"}`)) {
		t.Fatalf("unexpected body %s", body)
	}

	if status, _ := ta.do(t, http.MethodGet, "/webhook/find/lucas", "", map[string]string{"apikey": "wrong"}); status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if status, _ := ta.do(t, http.MethodGet, "/webhook/find/lucas", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", status)
	}
	if status, _ := ta.do(t, http.MethodGet, "/webhook/find/other", "", map[string]string{"apikey": "secret-key"}); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestMessageLog_ListFilterAndClear(t *testing.T) {
	ta := newTestApp(t, config.ModeReply)

	ta.do(t, http.MethodPost, "/webhook", menuEvent, nil)
	ta.do(t, http.MethodPost, "/webhook", menuEvent, nil)
	ta.do(t, http.MethodPost, "/webhook", `{"event":"messages.upsert","data":{"key":{"remoteJid":"5511888@s.whatsapp.net","fromMe":false},"message":{"conversation":"oi"}}}`, nil)

	var all []map[string]any
	_, body := ta.do(t, http.MethodGet, "/api/mensagens", "", nil)
	if err := json.Unmarshal(body, &all); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries (no dedup), got %d", len(all))
	}

	var filtered []map[string]any
	_, body = ta.do(t, http.MethodGet, "/api/mensagens?telefone=5511888", "", nil)
	if err := json.Unmarshal(body, &filtered); err != nil {
		t.Fatalf("decode filtered: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 filtered entry, got %d", len(filtered))
	}

	status, body := ta.do(t, http.MethodDelete, "/api/mensagens/limpar", "", nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	var cleared map[string]any
	_ = json.Unmarshal(body, &cleared)
	if cleared["status"] != "mensagens limpas" || cleared["removidas"] != float64(3) {
		t.Fatalf("unexpected clear body %s", body)
	}

	_, body = ta.do(t, http.MethodGet, "/api/mensagens", "", nil)
	if string(body) != "[]" {
		t.Fatalf("expected empty list after clear, got %s", body)
	}
}

func TestHealth_LivenessAndStats(t *testing.T) {
	ta := newTestApp(t, config.ModeReply)

	status, body := ta.do(t, http.MethodGet, "/", "", nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	var live map[string]string
	_ = json.Unmarshal(body, &live)
	if live["mensagem"] != usecase.LivenessMessage {
		t.Fatalf("unexpected liveness body %s", body)
	}

	ta.do(t, http.MethodPost, "/webhook", menuEvent, nil)

	status, body = ta.do(t, http.MethodGet, "/api/monitor/stats", "", nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	var envelope struct {
		Code    string         `json:"code"`
		Results map[string]any `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if envelope.Code != "SUCCESS" || envelope.Results["message_log_size"] != float64(1) {
		t.Fatalf("unexpected stats %s", body)
	}

	status, body = ta.do(t, http.MethodGet, "/metrics", "", nil)
	if status != http.StatusOK || !strings.Contains(string(body), "evo_relay_events_total") {
		t.Fatalf("expected relay metrics, got %d", status)
	}
}
