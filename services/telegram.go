package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/rbwdog/hata-masazhu/shared"
)

// TelegramService posts formatted notifications to the staff channel through
// the Telegram Bot API. A send is retried only on transient failures (client
// timeout or no HTTP response at all); once the remote answered with an error
// status the request is considered rejected and retrying is pointless.
type TelegramService struct {
	context.DefaultService

	apiHost  string
	botToken string
	chatID   string

	timeout    time.Duration
	retries    int
	retryDelay time.Duration

	client *http.Client
}

const TELEGRAM_SVC = "telegram_svc"

const (
	defaultAPIHost     = "https://api.telegram.org"
	defaultSendTimeout = 5 * time.Second
	defaultRetries     = 1
	defaultRetryDelay  = 500 * time.Millisecond
)

// ErrNotConfigured is returned when the bot token or chat id is absent.
// Delivery is never attempted in that state.
var ErrNotConfigured = errors.New("telegram bot token or chat id is not configured")

// DeliveryError describes a failed send after the retry budget is spent.
type DeliveryError struct {
	Transient bool
	Status    int
	cause     error
}

func (e *DeliveryError) Error() string {
	if e.Transient {
		return fmt.Sprintf("telegram delivery failed (transient): %v", e.cause)
	}
	return fmt.Sprintf("telegram rejected message with status %d", e.Status)
}

func (e *DeliveryError) Unwrap() error {
	return e.cause
}

func (svc TelegramService) Id() string {
	return TELEGRAM_SVC
}

func (svc *TelegramService) Configure(ctx *context.Context) error {
	svc.apiHost = os.Getenv("TELEGRAM_API_HOST")
	if svc.apiHost == "" {
		svc.apiHost = defaultAPIHost
	}
	svc.botToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	svc.chatID = os.Getenv("TELEGRAM_CHAT_ID")

	svc.timeout = defaultSendTimeout
	if raw := os.Getenv("DELIVERY_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		svc.timeout = d
	}

	svc.retries = defaultRetries
	if raw := os.Getenv("DELIVERY_RETRIES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		svc.retries = n
	}

	svc.retryDelay = defaultRetryDelay
	if raw := os.Getenv("DELIVERY_RETRY_DELAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		svc.retryDelay = d
	}

	svc.client = &http.Client{Timeout: svc.timeout}

	return svc.DefaultService.Configure(ctx)
}

func (svc *TelegramService) Start() error {
	if !svc.Configured() {
		log.Warn("Telegram credentials not configured, deliveries will fail")
	}
	return nil
}

func (svc *TelegramService) Configured() bool {
	return svc.botToken != "" && svc.chatID != ""
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// SendMessage delivers text to the staff channel, retrying transient
// failures with a fixed delay between attempts.
func (svc *TelegramService) SendMessage(text string) error {
	if !svc.Configured() {
		deliveriesTotal.WithLabelValues("unconfigured").Inc()
		return ErrNotConfigured
	}

	body, err := shared.JSONMarshal(sendMessageRequest{ChatID: svc.chatID, Text: text})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", svc.apiHost, svc.botToken)

	var lastErr *DeliveryError
	for attempt := 0; attempt <= svc.retries; attempt++ {
		if attempt > 0 {
			log.WithFields(log.Fields{"attempt": attempt, "max": svc.retries}).
				Warn("Retrying telegram delivery")
			deliveryRetriesTotal.Inc()
			time.Sleep(svc.retryDelay)
		}

		resp, err := svc.client.Post(url, "application/json", bytes.NewReader(body))
		if err != nil {
			// Timeout or connection-level failure: no response from the
			// remote, worth another attempt.
			lastErr = &DeliveryError{Transient: true, cause: err}
			continue
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			deliveriesTotal.WithLabelValues("ok").Inc()
			return nil
		}

		// The remote rejected the request; a retry would send the same
		// payload to the same verdict.
		deliveriesTotal.WithLabelValues("terminal").Inc()
		return &DeliveryError{Transient: false, Status: resp.StatusCode}
	}

	deliveriesTotal.WithLabelValues("transient").Inc()
	log.WithError(lastErr).Error("Telegram delivery failed after retries")
	return lastErr
}
