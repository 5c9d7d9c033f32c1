package services

import (
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/rbwdog/hata-masazhu/dto"
	"github.com/rbwdog/hata-masazhu/shared"
)

// ReviewService runs the relay pipeline: a validated submission or click is
// formatted into a staff notification and handed to the delivery client.
// Delivery failures are surfaced to the caller as generic internal errors and
// mirrored into the alert throttle.
type ReviewService struct {
	context.DefaultService

	googleReviewURL string

	telegramSvc *TelegramService
	alertSvc    *AlertService
	dedupSvc    *DedupService
}

const REVIEW_SVC = "review_svc"

func (svc ReviewService) Id() string {
	return REVIEW_SVC
}

func (svc *ReviewService) Configure(ctx *context.Context) error {
	svc.googleReviewURL = os.Getenv("GOOGLE_REVIEW_URL")
	return svc.DefaultService.Configure(ctx)
}

func (svc *ReviewService) Start() error {
	svc.telegramSvc = svc.Service(TELEGRAM_SVC).(*TelegramService)
	svc.alertSvc = svc.Service(ALERT_SVC).(*AlertService)
	svc.dedupSvc = svc.Service(DEDUP_SVC).(*DedupService)
	return nil
}

// SubmitReview relays a validated review to the staff channel. Five-star
// guests additionally receive the public Google review URL when one is
// configured, so the client can redirect them.
func (svc *ReviewService) SubmitReview(req dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error) {
	reviewsReceivedTotal.WithLabelValues(strconv.Itoa(req.Rating)).Inc()

	msg := formatReviewMessage(req.Name, req.Rating, req.Reason, time.Now())
	if err := svc.telegramSvc.SendMessage(msg); err != nil {
		log.WithError(err).WithField("rating", req.Rating).Error("Failed to relay review")
		svc.alertSvc.MaybeAlert("Не вдалося надіслати відгук у канал", err.Error())
		return nil, shared.NewInternalError(err, dto.MsgInternalError)
	}

	resp := &dto.SubmitReviewResponse{Success: true}
	if req.Rating == 5 && svc.googleReviewURL != "" {
		resp.RedirectURL = svc.googleReviewURL
	}
	return resp, nil
}

// GoogleClick relays an "opened the Google review link" engagement event.
func (svc *ReviewService) GoogleClick(req dto.GoogleClickRequest) (*dto.ClickResponse, error) {
	msg := formatGoogleClickMessage(req.Name, time.Now())
	if err := svc.telegramSvc.SendMessage(msg); err != nil {
		log.WithError(err).Error("Failed to relay google click")
		svc.alertSvc.MaybeAlert("Не вдалося надіслати подію переходу в Google", err.Error())
		return nil, shared.NewInternalError(err, dto.MsgInternalError)
	}

	return &dto.ClickResponse{Success: true}, nil
}

// MasterClick relays a staff-member card click. Repeated clicks from the
// same address for the same master within the dedup window are acknowledged
// without another delivery.
func (svc *ReviewService) MasterClick(clientIP string, req dto.MasterClickRequest) (*dto.ClickResponse, error) {
	subject := req.Master
	if subject == "" {
		subject = shared.UnknownMaster
	}

	key := DedupKey(clientIP, subject)
	now := time.Now()

	if svc.dedupSvc.ShouldSuppress(key, now) {
		clicksDedupedTotal.Inc()
		return &dto.ClickResponse{Success: true, Deduped: true}, nil
	}
	svc.dedupSvc.Record(key, now)

	var rating *int
	if req.Rating != nil && dto.IsValidRating(*req.Rating) {
		rating = req.Rating
	}

	msg := formatMasterClickMessage(req.Name, req.Master, rating, now)
	if err := svc.telegramSvc.SendMessage(msg); err != nil {
		log.WithError(err).WithField("master", subject).Error("Failed to relay master click")
		svc.alertSvc.MaybeAlert("Не вдалося надіслати подію вибору майстра", err.Error())
		return nil, shared.NewInternalError(err, dto.MsgInternalError)
	}

	return &dto.ClickResponse{Success: true}, nil
}
