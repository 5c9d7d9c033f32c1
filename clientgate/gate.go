package clientgate

import (
	"errors"
	"time"

	"github.com/rbwdog/hata-masazhu/shared"
)

const (
	// StorageKey is the fixed key the stored review lives under.
	StorageKey = "hata_masazhu_review"

	// Retention is how long a stored review keeps the form locked.
	Retention = 72 * time.Hour
)

// StoredReview mirrors a completed submission on the device.
type StoredReview struct {
	Name          string    `json:"name"`
	Rating        int       `json:"rating"`
	Reason        string    `json:"reason,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
	RedirectURL   string    `json:"redirectUrl,omitempty"`
	GoogleClicked bool      `json:"googleClicked"`
	MasterClicked bool      `json:"masterClicked"`
}

type State int

const (
	StateUnrated State = iota
	StateRated
	StateSubmitting
	StateAwaitingClick
	StateSubmitted
)

var (
	ErrFormLocked    = errors.New("a review is already stored for this device")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrNotRated      = errors.New("no rating selected")
	ErrNotSubmitting = errors.New("no submission in progress")
	ErrNotSubmitted  = errors.New("no stored review")
)

// Gate tracks the one-review-per-device lifecycle over durable storage.
type Gate struct {
	store Storage
	now   func() time.Time

	state  State
	rating int
	review *StoredReview
}

func NewGate(store Storage) *Gate {
	g := &Gate{store: store, now: time.Now}
	g.load()
	return g
}

// load restores state from storage, discarding records that are expired,
// structurally invalid, or that claim five stars without a redirect URL — an
// impossible persisted state that would dead-end the guest.
func (g *Gate) load() {
	g.state = StateUnrated
	g.review = nil

	raw, ok := g.store.Get(StorageKey)
	if !ok {
		return
	}

	var rec StoredReview
	if err := shared.JSONUnmarshal([]byte(raw), &rec); err != nil ||
		rec.SubmittedAt.IsZero() || rec.Rating < 1 || rec.Rating > 5 {
		g.store.Remove(StorageKey)
		return
	}

	if g.now().Sub(rec.SubmittedAt) > Retention {
		g.store.Remove(StorageKey)
		return
	}

	if rec.Rating == 5 && rec.RedirectURL == "" {
		g.store.Remove(StorageKey)
		return
	}

	g.review = &rec
	if rec.Rating == 5 && !rec.GoogleClicked {
		g.state = StateAwaitingClick
	} else {
		g.state = StateSubmitted
	}
}

func (g *Gate) State() State {
	return g.state
}

// Review returns the stored review, nil when none is held.
func (g *Gate) Review() *StoredReview {
	return g.review
}

// CanSubmit reports whether the form is open on this device.
func (g *Gate) CanSubmit() bool {
	return g.state == StateUnrated || g.state == StateRated
}

// Rate selects a star rating.
func (g *Gate) Rate(rating int) error {
	if !g.CanSubmit() {
		return ErrFormLocked
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	g.rating = rating
	g.state = StateRated
	return nil
}

// BeginSubmit marks the submission as in flight.
func (g *Gate) BeginSubmit() error {
	if g.state != StateRated {
		return ErrNotRated
	}
	g.state = StateSubmitting
	return nil
}

// AbortSubmit returns to the rated state after a failed request, leaving the
// form usable for another attempt.
func (g *Gate) AbortSubmit() {
	if g.state == StateSubmitting {
		g.state = StateRated
	}
}

// CompleteSubmit persists the accepted submission and locks the form.
// redirectURL is the server-delivered public review URL, empty for ratings
// below five.
func (g *Gate) CompleteSubmit(name, reason, redirectURL string) (*StoredReview, error) {
	if g.state != StateSubmitting {
		return nil, ErrNotSubmitting
	}

	rec := &StoredReview{
		Name:        name,
		Rating:      g.rating,
		Reason:      reason,
		SubmittedAt: g.now(),
		RedirectURL: redirectURL,
	}

	g.review = rec
	if err := g.persist(); err != nil {
		return nil, err
	}

	if rec.Rating == 5 && rec.RedirectURL != "" {
		g.state = StateAwaitingClick
	} else {
		g.state = StateSubmitted
	}
	return rec, nil
}

// SendGoogleClick reports the redirect click once per stored review. The
// send is fire-and-forget over the given transports; the idempotency flag is
// persisted regardless of delivery outcome.
func (g *Gate) SendGoogleClick(primary, fallback Transport) error {
	if g.review == nil {
		return ErrNotSubmitted
	}
	if g.review.GoogleClicked {
		return nil
	}

	payload, err := shared.JSONMarshal(map[string]string{"name": g.review.Name})
	if err != nil {
		return err
	}
	sendBestEffort(primary, fallback, "/api/review/google-click", payload)

	g.review.GoogleClicked = true
	if g.state == StateAwaitingClick {
		g.state = StateSubmitted
	}
	return g.persist()
}

// SendMasterClick reports a staff-member card click once per stored review.
func (g *Gate) SendMasterClick(master string, primary, fallback Transport) error {
	if g.review == nil {
		return ErrNotSubmitted
	}
	if g.review.MasterClicked {
		return nil
	}

	payload, err := shared.JSONMarshal(map[string]interface{}{
		"name":   g.review.Name,
		"rating": g.review.Rating,
		"master": master,
	})
	if err != nil {
		return err
	}
	sendBestEffort(primary, fallback, "/api/review/master-click", payload)

	g.review.MasterClicked = true
	return g.persist()
}

// Reset clears the stored review and reopens the form.
func (g *Gate) Reset() {
	g.store.Remove(StorageKey)
	g.state = StateUnrated
	g.rating = 0
	g.review = nil
}

func (g *Gate) persist() error {
	raw, err := shared.JSONMarshal(g.review)
	if err != nil {
		return err
	}
	g.store.Set(StorageKey, string(raw))
	return nil
}
