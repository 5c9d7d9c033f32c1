package dto

import (
	"github.com/rbwdog/hata-masazhu/shared"
)

// User-facing validation messages. Kept in Ukrainian, the language of the
// salon's guests; internal logs stay in English.
const (
	MsgNameRequired   = "Вкажіть, будь ласка, ваше імʼя"
	MsgInvalidRating  = "Оцінка має бути цілим числом від 1 до 5"
	MsgReasonRequired = "Будь ласка, розкажіть, що нам варто покращити"
	MsgInvalidBody    = "Некоректний запит"
	MsgInternalError  = "Щось пішло не так. Спробуйте, будь ласка, пізніше"
)

type SubmitReviewRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Rating int    `json:"rating" validate:"review_rating"`
	Reason string `json:"reason" validate:"max=1000"`
}

// Normalize sanitizes the free-text fields in place. Run before Validate.
func (r *SubmitReviewRequest) Normalize() {
	r.Name = shared.Sanitize(r.Name, shared.MaxNameLen)
	r.Reason = shared.Sanitize(r.Reason, shared.MaxReasonLen)
}

// Validate enforces the rating domain, the non-empty name policy and the
// conditional comment rule: anything below five stars must say why.
func (r *SubmitReviewRequest) Validate() error {
	if !IsValidRating(r.Rating) {
		return shared.NewBadRequestError(nil, MsgInvalidRating)
	}
	if r.Name == "" {
		return shared.NewBadRequestError(nil, MsgNameRequired)
	}
	if r.Rating < 5 && r.Reason == "" {
		return shared.NewBadRequestError(nil, MsgReasonRequired)
	}
	if err := GetValidator().Struct(r); err != nil {
		errs := FormatValidationErrors(err)
		if len(errs) > 0 {
			return shared.NewBadRequestError(err, errs[0].Message)
		}
		return shared.NewBadRequestError(err, "Validation failed")
	}
	return nil
}

type SubmitReviewResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

type GoogleClickRequest struct {
	Name string `json:"name" validate:"max=100"`
}

func (r *GoogleClickRequest) Normalize() {
	r.Name = shared.Sanitize(r.Name, shared.MaxNameLen)
}

type MasterClickRequest struct {
	Name   string `json:"name" validate:"max=100"`
	Rating *int   `json:"rating,omitempty"`
	Master string `json:"master" validate:"max=100"`
}

func (r *MasterClickRequest) Normalize() {
	r.Name = shared.Sanitize(r.Name, shared.MaxNameLen)
	r.Master = shared.Sanitize(r.Master, shared.MaxMasterLen)
}

type ClickResponse struct {
	Success bool `json:"success"`
	Deduped bool `json:"deduped,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
