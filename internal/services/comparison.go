package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

type ComparisonState string

const (
	CompareLoading ComparisonState = "loading"
	CompareReady   ComparisonState = "ready"
	CompareError   ComparisonState = "error"
)

type ComparisonAPI interface {
	GetDentist(ctx context.Context, id string) (*models.Dentist, error)
}

// Comparison is the side-by-side view of two dentists. The highlight pairs
// are indexed like Dentists; a tie highlights neither side.
type Comparison struct {
	State          ComparisonState  `json:"state"`
	Error          string           `json:"error,omitempty"`
	Dentists       []models.Dentist `json:"dentists"`
	LowerPrice     [2]bool          `json:"lowerPrice"`
	MoreExperience [2]bool          `json:"moreExperience"`
}

type ComparisonService struct {
	api    ComparisonAPI
	logger *logging.Logger
}

func NewComparisonService(api ComparisonAPI, logger *logging.Logger) *ComparisonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ComparisonService{api: api, logger: logger}
}

// ParseCompareIDs splits the comma separated ids query value.
func ParseCompareIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Compare fetches the first two dentists in parallel. With fewer than two
// ids the view stays loading.
func (s *ComparisonService) Compare(ctx context.Context, ids []string) *Comparison {
	if len(ids) < 2 {
		return &Comparison{State: CompareLoading, Dentists: []models.Dentist{}}
	}

	var pair [2]*models.Dentist
	g, gctx := errgroup.WithContext(ctx)
	for i := range pair {
		g.Go(func() error {
			d, err := s.api.GetDentist(gctx, ids[i])
			if err != nil {
				return err
			}
			pair[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("comparison fetch failed", "ids", ids[:2], "error", err)
		return &Comparison{State: CompareError, Error: "Failed to load comparison data.", Dentists: []models.Dentist{}}
	}

	a, b := pair[0], pair[1]
	return &Comparison{
		State:          CompareReady,
		Dentists:       []models.Dentist{*a, *b},
		LowerPrice:     [2]bool{a.StartingPrice < b.StartingPrice, b.StartingPrice < a.StartingPrice},
		MoreExperience: [2]bool{a.YearExperience > b.YearExperience, b.YearExperience > a.YearExperience},
	}
}
