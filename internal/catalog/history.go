package catalog

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

// SortOrder orders bookings by date.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// ParseSortOrder reads "asc"/"desc", defaulting to newest first.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(s, string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 5

// HistoryFilter is the set of predicates applied to a booking list.
// Zero values disable a predicate.
type HistoryFilter struct {
	Search string
	Status models.BookingStatus
	From   time.Time // inclusive
	To     time.Time // inclusive
}

// History is a user's booking list plus the table state the page shows:
// filters, sort order and pagination. Every setter that changes what is
// listed sends the table back to page 1.
type History struct {
	all      []models.Booking
	filter   HistoryFilter
	order    SortOrder
	pageSize int
	page     int

	hideBlocked bool
	filtered    []models.Booking
}

// NewHistory wraps bookings with default state: no filters, newest first, page 1.
func NewHistory(bookings []models.Booking, pageSize int) *History {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	h := &History{
		all:      bookings,
		order:    SortDesc,
		pageSize: pageSize,
		page:     1,
	}
	h.recompute()
	return h
}

// HideBlocked drops schedule blocks from the list unless the status filter
// asks for them explicitly. Patients never see a dentist's blocked slots.
func (h *History) HideBlocked(hide bool) {
	h.hideBlocked = hide
	h.reset()
}

func (h *History) SetSearch(term string) {
	h.filter.Search = term
	h.reset()
}

func (h *History) SetStatus(status models.BookingStatus) {
	h.filter.Status = status
	h.reset()
}

// SetDateRange bounds the list by calendar day. from is taken from the start
// of its day and to through the last millisecond of its day, both in the
// location the times carry. Zero times leave that side open.
func (h *History) SetDateRange(from, to time.Time) {
	if !from.IsZero() {
		from = StartOfDay(from)
	}
	if !to.IsZero() {
		to = EndOfDay(to)
	}
	h.filter.From, h.filter.To = from, to
	h.reset()
}

func (h *History) SetSort(order SortOrder) {
	h.order = order
	h.reset()
}

func (h *History) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	h.pageSize = size
	h.reset()
}

// SetPage moves to page n, clamped to the available pages.
func (h *History) SetPage(n int) {
	h.page = clamp(n, 1, h.PageCount())
}

func (h *History) Filter() HistoryFilter { return h.filter }
func (h *History) Sort() SortOrder       { return h.order }
func (h *History) PageSize() int         { return h.pageSize }
func (h *History) CurrentPage() int      { return h.page }

// Filtered returns every booking that passes the filters, in sort order.
func (h *History) Filtered() []models.Booking {
	return h.filtered
}

// PageCount is max(1, ceil(filtered/pageSize)).
func (h *History) PageCount() int {
	return pageCount(len(h.filtered), h.pageSize)
}

// HistoryPage is one rendered page of the table.
type HistoryPage struct {
	Items     []models.Booking `json:"items"`
	Page      int              `json:"page"`
	PageSize  int              `json:"pageSize"`
	PageCount int              `json:"pageCount"`
	Total     int              `json:"total"`
	NoResults bool             `json:"noResults"`
}

// Page returns the slice filtered[(page-1)*size : page*size].
func (h *History) Page() HistoryPage {
	start := (h.page - 1) * h.pageSize
	end := start + h.pageSize
	if start > len(h.filtered) {
		start = len(h.filtered)
	}
	if end > len(h.filtered) {
		end = len(h.filtered)
	}
	items := make([]models.Booking, end-start)
	copy(items, h.filtered[start:end])
	return HistoryPage{
		Items:     items,
		Page:      h.page,
		PageSize:  h.pageSize,
		PageCount: h.PageCount(),
		Total:     len(h.filtered),
		NoResults: len(h.filtered) == 0,
	}
}

func (h *History) reset() {
	h.page = 1
	h.recompute()
}

// recompute rebuilds the filtered list from the full list.
func (h *History) recompute() {
	out := make([]models.Booking, 0, len(h.all))
	for _, b := range h.all {
		if h.hideBlocked && b.Status == models.StatusBlocked && h.filter.Status != models.StatusBlocked {
			continue
		}
		if h.filter.Matches(b) {
			out = append(out, b)
		}
	}
	SortBookings(out, h.order)
	h.filtered = out
}

// Matches applies status, then date range, then search.
func (f HistoryFilter) Matches(b models.Booking) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && b.BookingDate.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && b.BookingDate.After(f.To) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return strings.Contains(strings.ToLower(b.Dentist.Name), term) ||
			strings.Contains(strings.ToLower(b.ID.Hex()), term)
	}
	return true
}

// SortBookings orders bookings by date in place. Equal dates keep their order.
func SortBookings(bookings []models.Booking, order SortOrder) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if order == SortAsc {
			return bookings[i].BookingDate.Before(bookings[j].BookingDate)
		}
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
}

// StartOfDay is midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last millisecond of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

func pageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	n := int(math.Ceil(float64(total) / float64(size)))
	if n < 1 {
		return 1
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
