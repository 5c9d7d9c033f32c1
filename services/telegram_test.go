package services

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbwdog/hata-masazhu/shared"
)

func newTestTelegram(apiHost string, retries int, timeout time.Duration) *TelegramService {
	return &TelegramService{
		apiHost:    apiHost,
		botToken:   "test-token",
		chatID:     "-100123",
		timeout:    timeout,
		retries:    retries,
		retryDelay: 10 * time.Millisecond,
		client:     &http.Client{Timeout: timeout},
	}
}

func TestSendMessageSuccess(t *testing.T) {
	var calls int32
	var gotPath string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	svc := newTestTelegram(server.URL, 1, time.Second)
	require.NoError(t, svc.SendMessage("привіт"))

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)

	var payload sendMessageRequest
	require.NoError(t, shared.JSONUnmarshal(gotBody, &payload))
	assert.Equal(t, "-100123", payload.ChatID)
	assert.Equal(t, "привіт", payload.Text)
}

func TestSendMessageStatusErrorIsTerminal(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	svc := newTestTelegram(server.URL, 3, time.Second)
	err := svc.SendMessage("hi")

	require.Error(t, err)
	var delErr *DeliveryError
	require.True(t, errors.As(err, &delErr))
	assert.False(t, delErr.Transient)
	assert.Equal(t, http.StatusBadRequest, delErr.Status)

	// No retries after an explicit rejection.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSendMessageTimeoutIsRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	svc := newTestTelegram(server.URL, 2, 50*time.Millisecond)
	err := svc.SendMessage("hi")

	require.Error(t, err)
	var delErr *DeliveryError
	require.True(t, errors.As(err, &delErr))
	assert.True(t, delErr.Transient)

	// Initial attempt plus exactly two retries.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendMessageConnectionFailureIsRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	svc := newTestTelegram(deadURL, 1, time.Second)
	err := svc.SendMessage("hi")

	require.Error(t, err)
	var delErr *DeliveryError
	require.True(t, errors.As(err, &delErr))
	assert.True(t, delErr.Transient)
}

func TestSendMessageUnconfigured(t *testing.T) {
	svc := &TelegramService{client: &http.Client{}}

	err := svc.SendMessage("hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
