package webhook

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dwarvesf/swappy/internal/utils/logger"
)

// Client pings uptime heartbeat URLs after scheduled jobs succeed
type Client struct {
	httpClient *resty.Client
	logger     *logger.Logger
}

// New creates a new webhook client with timeout and a single retry
func New(logger *logger.Logger) *Client {
	return &Client{
		httpClient: resty.New().
			SetTimeout(10 * time.Second).
			SetRetryCount(1),
		logger: logger,
	}
}

// CallUptimeWebhook makes a GET request to the heartbeat URL. It reports
// whether the call got a 2xx response; failures are only logged.
func (c *Client) CallUptimeWebhook(ctx context.Context, webhookURL string) bool {
	if webhookURL == "" {
		return false
	}

	resp, err := c.httpClient.R().SetContext(ctx).Get(webhookURL)
	if err != nil {
		c.logger.Error("[CallUptimeWebhook][Get]", map[string]string{
			"url":   webhookURL,
			"error": err.Error(),
		})
		return false
	}
	if !resp.IsSuccess() {
		c.logger.Error("[CallUptimeWebhook][Status]", map[string]string{
			"url":         webhookURL,
			"status_code": resp.Status(),
		})
		return false
	}

	c.logger.Debug("[CallUptimeWebhook] heartbeat sent", map[string]string{
		"url":         webhookURL,
		"status_code": resp.Status(),
	})
	return true
}
