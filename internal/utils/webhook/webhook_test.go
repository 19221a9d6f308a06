package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dwarvesf/swappy/internal/types/environments"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

func TestCallUptimeWebhook(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(logger.New(environments.Test))

	assert.True(t, c.CallUptimeWebhook(context.Background(), srv.URL+"/up"))
	assert.False(t, c.CallUptimeWebhook(context.Background(), srv.URL+"/down"))
	assert.False(t, c.CallUptimeWebhook(context.Background(), ""))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&hits), int32(2))
}
