package services

import (
	"context"

	"github.com/harentsoaR/dentist-booking-web/internal/catalog"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

type DirectoryAPI interface {
	ListDentists(ctx context.Context) ([]models.Dentist, error)
	GetDentist(ctx context.Context, id string) (*models.Dentist, error)
	ListReviews(ctx context.Context, dentistID string) ([]models.Review, error)
	Unavailable(ctx context.Context, dentistID string) ([]models.Slot, error)
}

// CatalogQuery is the catalog page state carried in the URL.
type CatalogQuery struct {
	Search      string
	Expertise   string
	Order       catalog.PriceOrder
	CompareMode bool
	Selected    []string
}

// DentistDetail is a public dentist page: the record, its reviews and their summary.
type DentistDetail struct {
	Dentist *models.Dentist      `json:"dentist"`
	Reviews []models.Review      `json:"reviews"`
	Ratings models.RatingSummary `json:"ratings"`
}

// DirectoryService serves the public dentist pages.
type DirectoryService struct {
	api DirectoryAPI
}

func NewDirectoryService(api DirectoryAPI) *DirectoryService {
	return &DirectoryService{api: api}
}

func (s *DirectoryService) Catalog(ctx context.Context, q CatalogQuery) (*catalog.CatalogView, error) {
	dentists, err := s.api.ListDentists(ctx)
	if err != nil {
		return nil, failed("Failed to load dentists.", err)
	}
	c := catalog.NewDentistCatalog(dentists)
	c.SetSearch(q.Search)
	c.SetExpertise(q.Expertise)
	if q.Order != "" {
		c.SetPriceOrder(q.Order)
	}
	c.SetCompareMode(q.CompareMode)
	for _, id := range q.Selected {
		c.ToggleSelected(id)
	}
	v := c.View()
	return &v, nil
}

func (s *DirectoryService) Detail(ctx context.Context, id string) (*DentistDetail, error) {
	dentist, err := s.api.GetDentist(ctx, id)
	if err != nil {
		return nil, failed("Failed to load dentist data", err)
	}
	reviews, err := s.api.ListReviews(ctx, id)
	if err != nil {
		return nil, failed("Failed to load reviews.", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return &DentistDetail{Dentist: dentist, Reviews: reviews, Ratings: models.Summarize(reviews)}, nil
}

// Unavailable lists the dentist's taken slots for the date picker.
func (s *DirectoryService) Unavailable(ctx context.Context, id string) ([]models.Slot, error) {
	slots, err := s.api.Unavailable(ctx, id)
	if err != nil {
		return nil, failed("Failed to load availability.", err)
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	return slots, nil
}
