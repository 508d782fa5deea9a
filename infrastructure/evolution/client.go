package evolution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/AzielCF/az-evo-relay/core/config"
	domainSend "github.com/AzielCF/az-evo-relay/domains/send"
	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 10 * time.Second

// Client talks to one Evolution API instance. A single Client is shared by the whole
// process so connections to the gateway are pooled.
type Client struct {
	baseURL  string
	apiKey   string
	instance string
	http     *http.Client
}

var _ domainSend.IGateway = (*Client)(nil)

func NewClient(cfg config.GatewayConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 16

	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		instance: cfg.InstanceName,
		http:     &http.Client{Timeout: timeout, Transport: transport},
	}
}

// SendTextURL is the gateway endpoint used for text replies.
func (c *Client) SendTextURL() string {
	return fmt.Sprintf("%s/message/sendText/%s", c.baseURL, url.PathEscape(c.instance))
}

// SendText posts one text message. Any 2xx status is a success; the gateway's JSON answer
// is decoded when present and ignored otherwise.
func (c *Client) SendText(ctx context.Context, msg domainSend.OutboundMessage) (domainSend.SendResponse, error) {
	var out domainSend.SendResponse

	body, err := json.Marshal(msg)
	if err != nil {
		return out, pkgError.GatewayError(fmt.Sprintf("failed to marshal body: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.SendTextURL(), bytes.NewReader(body))
	if err != nil {
		return out, pkgError.GatewayError(fmt.Sprintf("error when create http object: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return out, pkgError.GatewayError(fmt.Sprintf("sendText request failed: %v", err))
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, pkgError.GatewayError(fmt.Sprintf("sendText returned status %d: %s", resp.StatusCode, truncate(string(respBody), 256)))
	}

	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &out); err != nil {
			logrus.Debugf("[EVOLUTION] non-JSON sendText answer ignored: %v", err)
		}
	}
	return out, nil
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
