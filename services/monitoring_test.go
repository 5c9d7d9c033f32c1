package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Services start sequentially, so the metrics listener must not hold up the
// services registered after it.
func TestMonitoringStartReturnsWithoutBlocking(t *testing.T) {
	t.Setenv("PROMETHEUS_PORT", "0")

	svc := &MonitoringService{}

	done := make(chan error, 1)
	go func() { done <- svc.Start() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return, metrics listener is blocking startup")
	}
	defer svc.Shutdown()

	resp, err := svc.server.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
