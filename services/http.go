package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	_ "github.com/rbwdog/hata-masazhu/docs"
	"github.com/rbwdog/hata-masazhu/services/handlers"
	"github.com/rbwdog/hata-masazhu/shared"
)

type HttpService struct {
	context.DefaultService

	reviewSvc *ReviewService
	alertSvc  *AlertService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.reviewSvc = svc.Service(REVIEW_SVC).(*ReviewService)
	svc.alertSvc = svc.Service(ALERT_SVC).(*AlertService)

	app := fiber.New(fiber.Config{
		AppName:               SERVICE_NAME,
		DisableStartupMessage: os.Getenv("LOG_LEVEL") != "TRACE",
		JSONEncoder:           shared.JSONMarshal,
		JSONDecoder:           shared.JSONUnmarshal,
		ErrorHandler:          handlers.NewErrorHandler(svc.alertSvc.MaybeAlert),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(svc.requestLogger)

	app.Get("/healthz", svc.healthz)
	app.Get("/swagger/*", swagger.HandlerDefault)

	h := handlers.NewReviewHandler(svc.reviewSvc)

	api := app.Group("/api")
	api.Post("/review", h.SubmitReview)
	api.Post("/review/google-click", h.GoogleClick)
	api.Post("/review/master-click", h.MasterClick)

	svc.app = app

	log.Info().Int("port", svc.port).Msg("HTTP server started")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// @Summary Health check
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (svc *HttpService) healthz(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).SendString("ok")
}

func (svc *HttpService) requestLogger(c *fiber.Ctx) error {
	c.Locals(shared.RequestID, uuid.New().String())

	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok {
			status = appErr.StatusCode
		} else {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
	}

	endpoint := c.Route().Path
	httpRequestsTotal.WithLabelValues(endpoint, c.Method(), strconv.Itoa(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(endpoint, c.Method(), strconv.Itoa(status)).
		Observe(time.Since(start).Seconds())

	if os.Getenv("LOG_LEVEL") == "TRACE" {
		log.Trace().
			Str(shared.RequestID, c.Locals(shared.RequestID).(string)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
	}

	return err
}
