package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AzielCF/az-evo-relay/core/config"
	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	pkgUtils "github.com/AzielCF/az-evo-relay/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	HeaderEventID   = "X-Relay-Event-ID"
	HeaderSignature = "X-Hub-Signature-256"
)

// Forwarder delivers raw gateway events to the configured downstream webhooks.
type Forwarder struct {
	urls   []string
	secret string
	client *http.Client
}

func New(cfg config.ForwardConfig) *Forwarder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Forwarder{
		urls:   append([]string(nil), cfg.URLs...),
		secret: cfg.Secret,
		client: &http.Client{Timeout: timeout, Transport: http.DefaultTransport.(*http.Transport).Clone()},
	}
}

func (f *Forwarder) Targets() int {
	return len(f.urls)
}

// Forward attempts to deliver the payload to every configured URL.
// It only returns an error when all deliveries fail; partial failures are logged so
// successful targets still receive the event.
func (f *Forwarder) Forward(ctx context.Context, eventID, eventName string, payload map[string]any) error {
	total := len(f.urls)
	logrus.WithFields(logrus.Fields{
		"event":    eventName,
		"event_id": eventID,
		"webhooks": total,
	}).Debug("[FORWARD] Forwarding event to configured webhook(s)")

	if total == 0 {
		logrus.WithField("event", eventName).Info("[FORWARD] No webhook configured; skipping dispatch")
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return pkgError.WebhookError(fmt.Sprintf("failed to marshal body: %v", err))
	}

	var (
		failed    []string
		successes int
	)
	for _, url := range f.urls {
		if err := f.submit(ctx, url, eventID, body); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", url, err))
			logrus.Warnf("[FORWARD] Failed forwarding %s to %s: %v", eventName, url, err)
			continue
		}
		successes++
	}

	if len(failed) == total {
		return pkgError.WebhookError(fmt.Sprintf("all webhook URLs failed for %s: %s", eventName, strings.Join(failed, "; ")))
	}
	if len(failed) > 0 {
		logrus.Warnf("[FORWARD] Some webhook URLs failed for %s (succeeded: %d/%d)", eventName, successes, total)
	} else {
		logrus.Infof("[FORWARD] %s forwarded to %d webhook(s)", eventName, total)
	}
	return nil
}

// submit makes a single attempt; the relay does not retry.
func (f *Forwarder) submit(ctx context.Context, url, eventID string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error when create http object: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if eventID != "" {
		req.Header.Set(HeaderEventID, eventID)
	}
	if f.secret != "" {
		signature, err := pkgUtils.GetMessageDigestOrSignature(body, []byte(f.secret))
		if err != nil {
			return fmt.Errorf("error when create signature: %w", err)
		}
		req.Header.Set(HeaderSignature, "sha256="+signature)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (f *Forwarder) Close() {
	f.client.CloseIdleConnections()
}
