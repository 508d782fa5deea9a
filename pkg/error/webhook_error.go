package error

import "net/http"

// WebhookError reports a failed delivery to a downstream webhook target.
type WebhookError string

func (err WebhookError) Error() string {
	return string(err)
}

func (err WebhookError) ErrCode() string {
	return "WEBHOOK_ERROR"
}

func (err WebhookError) StatusCode() int {
	return http.StatusInternalServerError
}

// GatewayError reports a failed call to the WhatsApp gateway.
type GatewayError string

func (err GatewayError) Error() string {
	return string(err)
}

func (err GatewayError) ErrCode() string {
	return "GATEWAY_ERROR"
}

func (err GatewayError) StatusCode() int {
	return http.StatusBadGateway
}
