package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

// ProfileRedirect is where a successful profile save navigates back to.
const ProfileRedirect = "/dentist/profile"

type ProfileAPI interface {
	Me(ctx context.Context, token string) (*models.User, error)
	GetDentist(ctx context.Context, id string) (*models.Dentist, error)
	UpdateDentist(ctx context.Context, token, id string, update backend.DentistUpdate) error
	AddExpertise(ctx context.Context, token, id, tag string) error
	RemoveExpertise(ctx context.Context, token, id, tag string) error
}

// ProfileForm holds the editable dentist fields. Name is shown read-only.
type ProfileForm struct {
	Name           string   `json:"name"`
	Expertise      []string `json:"area_expertise"`
	YearExperience int      `json:"year_experience"`
	StartingPrice  float64  `json:"StartingPrice"`
	Picture        string   `json:"picture"`
}

// FormFromDentist snapshots a dentist record into a form.
func FormFromDentist(d *models.Dentist) ProfileForm {
	return ProfileForm{
		Name:           d.Name,
		Expertise:      append([]string{}, d.AreaExpertise...),
		YearExperience: d.YearExperience,
		StartingPrice:  d.StartingPrice,
		Picture:        d.Picture,
	}
}

// Equal compares every field; expertise order matters.
func (f ProfileForm) Equal(o ProfileForm) bool {
	return f.Name == o.Name &&
		slices.Equal(f.Expertise, o.Expertise) &&
		f.YearExperience == o.YearExperience &&
		f.StartingPrice == o.StartingPrice &&
		f.Picture == o.Picture
}

func (f ProfileForm) Validate() error {
	if len(f.Expertise) == 0 {
		return flowErr(KindInvalid, "Please select at least one area of expertise.", nil)
	}
	seen := make(map[string]struct{}, len(f.Expertise))
	for _, tag := range f.Expertise {
		if !models.IsExpertiseOption(tag) {
			return flowErr(KindInvalid, fmt.Sprintf("Unknown expertise %q.", tag), nil)
		}
		if _, dup := seen[tag]; dup {
			return flowErr(KindInvalid, fmt.Sprintf("Expertise %q is selected more than once.", tag), nil)
		}
		seen[tag] = struct{}{}
	}
	if f.YearExperience < 0 {
		return flowErr(KindInvalid, "Years of experience cannot be negative.", nil)
	}
	if f.StartingPrice < 0 {
		return flowErr(KindInvalid, "Starting price cannot be negative.", nil)
	}
	return nil
}

// ProfileSession is a loaded edit page: the dentist being edited and the
// snapshot save is enabled against.
type ProfileSession struct {
	DentistID string      `json:"dentistId"`
	Original  ProfileForm `json:"original"`
}

// CanSave reports whether current differs from the snapshot.
func (p *ProfileSession) CanSave(current ProfileForm) bool {
	return !p.Original.Equal(current)
}

// DentistProfile is a dentist record with its rating statistics.
type DentistProfile struct {
	Dentist *models.Dentist      `json:"dentist"`
	Ratings models.RatingSummary `json:"ratings"`
}

type ProfileService struct {
	api           ProfileAPI
	redirectDelay time.Duration
	logger        *logging.Logger
}

func NewProfileService(api ProfileAPI, redirectDelay time.Duration, logger *logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProfileService{api: api, redirectDelay: redirectDelay, logger: logger}
}

// linkedDentist resolves the session's user to their dentist record.
func (s *ProfileService) linkedDentist(ctx context.Context, token string) (*models.Dentist, error) {
	if err := requireSession(token, "You must be logged in to view your profile."); err != nil {
		return nil, err
	}
	user, err := s.api.Me(ctx, token)
	if err != nil {
		return nil, failed("Failed to load user data", err)
	}
	if user.Role != models.RoleDentist || user.DentistID == "" {
		return nil, flowErr(KindForbidden, "Only dentists can edit a dentist profile.", ErrNotDentist)
	}
	dentist, err := s.api.GetDentist(ctx, user.DentistID)
	if err != nil {
		return nil, failed("Failed to load dentist data", err)
	}
	return dentist, nil
}

// View returns the signed-in dentist's own profile.
func (s *ProfileService) View(ctx context.Context, token string) (*DentistProfile, error) {
	dentist, err := s.linkedDentist(ctx, token)
	if err != nil {
		return nil, err
	}
	return &DentistProfile{Dentist: dentist, Ratings: models.Summarize(dentist.Ratings)}, nil
}

// Load opens the edit page.
func (s *ProfileService) Load(ctx context.Context, token string) (*ProfileSession, error) {
	dentist, err := s.linkedDentist(ctx, token)
	if err != nil {
		return nil, err
	}
	return &ProfileSession{DentistID: dentist.ID.Hex(), Original: FormFromDentist(dentist)}, nil
}

// Save writes the form back in up to two steps: the expertise list is
// replaced only when it changed, then the general fields are always sent.
// Either step failing yields one "Update failed" error.
func (s *ProfileService) Save(ctx context.Context, token string, session *ProfileSession, current ProfileForm) (*Notice, error) {
	if err := requireSession(token, "You must be logged in to edit your profile."); err != nil {
		return nil, err
	}
	current.Name = session.Original.Name
	if !session.CanSave(current) {
		return nil, flowErr(KindInvalid, "No changes to save.", ErrNoChanges)
	}
	if err := current.Validate(); err != nil {
		return nil, err
	}

	if !slices.Equal(current.Expertise, session.Original.Expertise) {
		if err := s.replaceExpertise(ctx, token, session.DentistID, current.Expertise); err != nil {
			return nil, updateFailed(err)
		}
	}

	years, price, picture := current.YearExperience, current.StartingPrice, current.Picture
	err := s.api.UpdateDentist(ctx, token, session.DentistID, backend.DentistUpdate{
		YearExperience: &years,
		StartingPrice:  &price,
		Picture:        &picture,
	})
	if err != nil {
		return nil, updateFailed(err)
	}

	return notice("Profile updated successfully!").redirectAfter(ProfileRedirect, s.redirectDelay), nil
}

// replaceExpertise clears every tag then re-adds the selection in parallel.
// A failed clear is logged and the adds still run.
func (s *ProfileService) replaceExpertise(ctx context.Context, token, dentistID string, tags []string) error {
	if err := s.api.RemoveExpertise(ctx, token, dentistID, backend.ExpertiseAll); err != nil {
		s.logger.Warn("clearing expertise failed", "dentist_id", dentistID, "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, tag := range tags {
		g.Go(func() error {
			return s.api.AddExpertise(gctx, token, dentistID, tag)
		})
	}
	return g.Wait()
}

func updateFailed(err error) *FlowError {
	msg := backend.MessageOf(err)
	if msg == "" {
		var be *backend.Error
		if errors.As(err, &be) {
			msg = string(be.Code)
		} else {
			msg = err.Error()
		}
	}
	return failed("Update failed: "+msg, err)
}
