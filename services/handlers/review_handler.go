package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rbwdog/hata-masazhu/dto"
	"github.com/rbwdog/hata-masazhu/shared"
)

type ReviewHandler struct {
	reviewSvc ReviewServiceInterface
}

func NewReviewHandler(reviewSvc ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewSvc: reviewSvc,
	}
}

// @Summary Submit Review
// @Description This endpoint relays a star rating with optional comment to the staff channel. Five-star guests receive the public review URL for redirect.
// @Tags review
// @Accept  json
// @Produce json
// @Param submitReviewRequest body dto.SubmitReviewRequest true "Review submission"
// @Success 200 {object} dto.SubmitReviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/review [post]
func (h *ReviewHandler) SubmitReview(c *fiber.Ctx) error {
	var req dto.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, dto.MsgInvalidBody)
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	resp, err := h.reviewSvc.SubmitReview(req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Record Google Review Click
// @Description This endpoint records that a guest followed the public Google review link.
// @Tags review
// @Accept  json
// @Produce json
// @Param googleClickRequest body dto.GoogleClickRequest true "Click event"
// @Success 200 {object} dto.ClickResponse
// @Router /api/review/google-click [post]
func (h *ReviewHandler) GoogleClick(c *fiber.Ctx) error {
	var req dto.GoogleClickRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, dto.MsgInvalidBody)
	}

	req.Normalize()

	resp, err := h.reviewSvc.GoogleClick(req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Record Master Click
// @Description This endpoint records that a guest tapped a staff member's card. Repeats from the same address within the dedup window are acknowledged without delivery.
// @Tags review
// @Accept  json
// @Produce json
// @Param masterClickRequest body dto.MasterClickRequest true "Click event"
// @Success 200 {object} dto.ClickResponse
// @Router /api/review/master-click [post]
func (h *ReviewHandler) MasterClick(c *fiber.Ctx) error {
	var req dto.MasterClickRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, dto.MsgInvalidBody)
	}

	req.Normalize()

	resp, err := h.reviewSvc.MasterClick(c.IP(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
