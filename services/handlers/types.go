package handlers

import (
	"github.com/rbwdog/hata-masazhu/dto"
)

type ReviewServiceInterface interface {
	SubmitReview(req dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error)
	GoogleClick(req dto.GoogleClickRequest) (*dto.ClickResponse, error)
	MasterClick(clientIP string, req dto.MasterClickRequest) (*dto.ClickResponse, error)
}
