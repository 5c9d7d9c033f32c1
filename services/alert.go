package services

import (
	"os"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// AlertService self-reports operational failures to the same staff channel.
// Alerting is advisory: it is gated behind production mode plus an explicit
// opt-in, throttled to one alert per interval process-wide, and a failed
// alert is logged and discarded so it can never mask the failure it reports.
type AlertService struct {
	context.DefaultService

	enabled     bool
	minInterval time.Duration

	mutex       sync.Mutex
	lastAlertAt time.Time

	telegramSvc *TelegramService
}

const ALERT_SVC = "alert_svc"

const defaultAlertInterval = 5 * time.Minute

func (svc AlertService) Id() string {
	return ALERT_SVC
}

func (svc *AlertService) Configure(ctx *context.Context) error {
	svc.enabled = os.Getenv("APP_ENV") == "production" && os.Getenv("ALERTS_ENABLED") == "true"

	svc.minInterval = defaultAlertInterval
	if raw := os.Getenv("ALERT_MIN_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		svc.minInterval = d
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *AlertService) Start() error {
	svc.telegramSvc = svc.Service(TELEGRAM_SVC).(*TelegramService)
	return nil
}

// MaybeAlert attempts one throttled delivery of an operational alert.
// A no-op when alerting is disabled or the minimum interval since the last
// alert has not elapsed.
func (svc *AlertService) MaybeAlert(title string, details ...string) {
	if !svc.enabled {
		return
	}

	now := time.Now()

	svc.mutex.Lock()
	if !svc.lastAlertAt.IsZero() && now.Sub(svc.lastAlertAt) < svc.minInterval {
		svc.mutex.Unlock()
		alertsTotal.WithLabelValues("suppressed").Inc()
		return
	}
	svc.lastAlertAt = now
	svc.mutex.Unlock()

	if err := svc.telegramSvc.SendMessage(formatAlertMessage(title, details, now)); err != nil {
		// Swallowed: an alert about a failure must not become a failure.
		alertsTotal.WithLabelValues("failed").Inc()
		log.WithError(err).WithField("title", title).Error("Failed to deliver alert")
		return
	}

	alertsTotal.WithLabelValues("sent").Inc()
}
