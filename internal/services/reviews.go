package services

import (
	"context"
	"strings"
	"time"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

type ReviewAPI interface {
	GetBooking(ctx context.Context, token, id string) (*models.Booking, error)
	SubmitReview(ctx context.Context, token, dentistID string, in backend.ReviewInput) error
}

// ReviewForm is the star rating and text collected by the review modal.
type ReviewForm struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func (f ReviewForm) Validate() error {
	if f.Rating < models.MinRating || f.Rating > models.MaxRating {
		return flowErr(KindInvalid, "Please choose a rating between 1 and 5.", nil)
	}
	if strings.TrimSpace(f.Review) == "" {
		return flowErr(KindInvalid, "Please write a review.", nil)
	}
	return nil
}

type ReviewService struct {
	api          ReviewAPI
	dismissAfter time.Duration
	logger       *logging.Logger
}

func NewReviewService(api ReviewAPI, dismissAfter time.Duration, logger *logging.Logger) *ReviewService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReviewService{api: api, dismissAfter: dismissAfter, logger: logger}
}

// Submit reviews the dentist of a completed booking. The success notice
// dismisses itself; failures stay until the user acts.
func (s *ReviewService) Submit(ctx context.Context, token, bookingID string, form ReviewForm) (*Notice, error) {
	if err := requireSession(token, "You must be logged in to write a review."); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.api.GetBooking(ctx, token, bookingID)
	if err != nil {
		return nil, failed("Failed to load booking data", err)
	}
	if booking.Status != models.StatusCompleted {
		return nil, flowErr(KindInvalid, "Only completed appointments can be reviewed.", ErrNotReviewable)
	}

	err = s.api.SubmitReview(ctx, token, booking.Dentist.ID.Hex(), backend.ReviewInput{
		Rating: form.Rating,
		Review: strings.TrimSpace(form.Review),
	})
	if err != nil {
		s.logger.Warn("review submission failed", "booking_id", bookingID, "error", err)
		return nil, failed("Failed to submit review. Please try again.", err)
	}
	return notice("Thank you for your review!").dismissAfter(s.dismissAfter), nil
}
