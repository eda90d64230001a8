package catalog

import (
	"sort"
	"strings"

	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

// AllExpertise is the category that disables the expertise filter.
const AllExpertise = "All"

// PriceOrder is the catalog's two-way price sort.
type PriceOrder string

const (
	PriceAsc  PriceOrder = "asc"
	PriceDesc PriceOrder = "desc"
)

// ParsePriceOrder reads "asc"/"desc", defaulting to cheapest first.
func ParsePriceOrder(s string) PriceOrder {
	if strings.EqualFold(s, string(PriceDesc)) {
		return PriceDesc
	}
	return PriceAsc
}

// DentistCatalog is the dentist list page: name search, expertise category,
// price sort and the optional compare selection.
type DentistCatalog struct {
	all       []models.Dentist
	search    string
	expertise string
	order     PriceOrder
	compare   bool
	selected  []string
}

func NewDentistCatalog(dentists []models.Dentist) *DentistCatalog {
	return &DentistCatalog{
		all:       dentists,
		expertise: AllExpertise,
		order:     PriceAsc,
	}
}

func (c *DentistCatalog) SetSearch(term string) { c.search = term }

// SetExpertise selects a category; "" and AllExpertise show everyone.
func (c *DentistCatalog) SetExpertise(category string) {
	if category == "" || strings.EqualFold(category, AllExpertise) {
		category = AllExpertise
	}
	c.expertise = category
}

func (c *DentistCatalog) SetPriceOrder(order PriceOrder) { c.order = order }

// TogglePriceOrder flips between cheapest-first and dearest-first.
func (c *DentistCatalog) TogglePriceOrder() {
	if c.order == PriceAsc {
		c.order = PriceDesc
		return
	}
	c.order = PriceAsc
}

func (c *DentistCatalog) PriceOrder() PriceOrder { return c.order }
func (c *DentistCatalog) Expertise() string      { return c.expertise }

// Categories is AllExpertise followed by every distinct expertise tag in the
// loaded dentists, alphabetically.
func (c *DentistCatalog) Categories() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, d := range c.all {
		for _, tag := range d.AreaExpertise {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return append([]string{AllExpertise}, tags...)
}

// Visible returns the dentists passing the search and category, sorted by
// price. The sort is stable, so equal prices keep their loaded order.
func (c *DentistCatalog) Visible() []models.Dentist {
	term := strings.ToLower(strings.TrimSpace(c.search))
	out := make([]models.Dentist, 0, len(c.all))
	for _, d := range c.all {
		if term != "" && !strings.Contains(strings.ToLower(d.Name), term) {
			continue
		}
		if c.expertise != AllExpertise && !d.AreaExpertise.Has(c.expertise) {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c.order == PriceDesc {
			return out[i].StartingPrice > out[j].StartingPrice
		}
		return out[i].StartingPrice < out[j].StartingPrice
	})
	return out
}

// CompareMode reports whether cards are checkboxes instead of links.
func (c *DentistCatalog) CompareMode() bool { return c.compare }

// SetCompareMode switches compare mode; leaving it clears the selection.
func (c *DentistCatalog) SetCompareMode(on bool) {
	c.compare = on
	if !on {
		c.selected = nil
	}
}

// ToggleSelected checks or unchecks a dentist in compare mode. The page copy
// asks for two, but nothing stops a larger selection.
func (c *DentistCatalog) ToggleSelected(id string) {
	if !c.compare {
		return
	}
	for i, s := range c.selected {
		if s == id {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			return
		}
	}
	c.selected = append(c.selected, id)
}

// Selected returns the checked dentist ids in the order they were checked.
func (c *DentistCatalog) Selected() []string {
	return append([]string(nil), c.selected...)
}

// CanCompare reports whether exactly two dentists are checked.
func (c *DentistCatalog) CanCompare() bool {
	return c.compare && len(c.selected) == 2
}

// CatalogView is the JSON shape of the catalog page.
type CatalogView struct {
	Dentists    []models.Dentist `json:"dentists"`
	Categories  []string         `json:"categories"`
	Expertise   string           `json:"expertise"`
	PriceOrder  PriceOrder       `json:"priceOrder"`
	CompareMode bool             `json:"compareMode"`
	Selected    []string         `json:"selected,omitempty"`
	CanCompare  bool             `json:"canCompare"`
}

func (c *DentistCatalog) View() CatalogView {
	return CatalogView{
		Dentists:    c.Visible(),
		Categories:  c.Categories(),
		Expertise:   c.expertise,
		PriceOrder:  c.order,
		CompareMode: c.compare,
		Selected:    c.Selected(),
		CanCompare:  c.CanCompare(),
	}
}
