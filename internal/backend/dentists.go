package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

// ExpertiseAll asks the expertise DELETE route to drop every tag.
const ExpertiseAll = "all"

// DentistUpdate carries the general profile fields; nil fields are left alone.
type DentistUpdate struct {
	YearExperience *int     `json:"year_experience,omitempty"`
	StartingPrice  *float64 `json:"StartingPrice,omitempty"`
	Picture        *string  `json:"picture,omitempty"`
}

// ReviewInput is the body of a review submission.
type ReviewInput struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

type expertiseBody struct {
	Expertise string `json:"expertise"`
}

// ListDentists returns every dentist.
func (c *Client) ListDentists(ctx context.Context) ([]models.Dentist, error) {
	var out []models.Dentist
	if err := c.do(ctx, "list_dentists", http.MethodGet, "/dentists", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDentist fetches one dentist record.
func (c *Client) GetDentist(ctx context.Context, id string) (*models.Dentist, error) {
	const op = "get_dentist"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	var out models.Dentist
	if err := c.do(ctx, op, http.MethodGet, "/dentists/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	if out.ID.IsZero() {
		return nil, &Error{Op: op, Code: CodeNotFound, Message: "dentist not found"}
	}
	return &out, nil
}

// UpdateDentist changes the general profile fields of a dentist. The response
// body is not needed; a 2xx that is not JSON still counts as success.
func (c *Client) UpdateDentist(ctx context.Context, token, id string, update DentistUpdate) error {
	const op = "update_dentist"
	if err := checkID(op, id); err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodPut, "/dentists/"+url.PathEscape(id), token, update, nil)
}

// AddExpertise appends one expertise tag to a dentist.
func (c *Client) AddExpertise(ctx context.Context, token, id, tag string) error {
	const op = "add_expertise"
	if err := checkID(op, id); err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodPut, "/dentists/"+url.PathEscape(id)+"/expertise", token, expertiseBody{Expertise: tag}, nil)
}

// RemoveExpertise drops one tag, or all of them when tag is ExpertiseAll.
func (c *Client) RemoveExpertise(ctx context.Context, token, id, tag string) error {
	const op = "remove_expertise"
	if err := checkID(op, id); err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodDelete, "/dentists/"+url.PathEscape(id)+"/expertise", token, expertiseBody{Expertise: tag}, nil)
}

// ListReviews returns the reviews left for a dentist.
func (c *Client) ListReviews(ctx context.Context, dentistID string) ([]models.Review, error) {
	const op = "list_reviews"
	if err := checkID(op, dentistID); err != nil {
		return nil, err
	}
	var out []models.Review
	if err := c.do(ctx, op, http.MethodGet, "/dentists/reviews/"+url.PathEscape(dentistID), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitReview records the caller's rating and review of a dentist.
func (c *Client) SubmitReview(ctx context.Context, token, dentistID string, in ReviewInput) error {
	const op = "submit_review"
	if err := checkID(op, dentistID); err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodPut, "/dentists/reviews/"+url.PathEscape(dentistID), token, in, nil)
}

// Unavailable lists the times a dentist cannot be booked.
func (c *Client) Unavailable(ctx context.Context, dentistID string) ([]models.Slot, error) {
	const op = "dentist_unavailable"
	if err := checkID(op, dentistID); err != nil {
		return nil, err
	}
	var out []models.Slot
	if err := c.do(ctx, op, http.MethodGet, "/dentists/availibility/"+url.PathEscape(dentistID), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
