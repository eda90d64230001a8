package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpertiseOptions is the fixed set of specialty labels a dentist can carry.
var ExpertiseOptions = []string{
	"Orthodontics",
	"Endodontics",
	"Prosthodontics",
	"Pediatric Dentistry",
	"Oral Surgery",
	"Periodontics",
	"Cosmetic Dentistry",
	"General Dentistry",
	"Implant Dentistry",
}

// IsExpertiseOption reports whether tag belongs to ExpertiseOptions.
func IsExpertiseOption(tag string) bool {
	for _, opt := range ExpertiseOptions {
		if opt == tag {
			return true
		}
	}
	return false
}

// Expertise is the canonical list form of a dentist's area_expertise.
// The backend sends either a single string or a list; both decode here.
type Expertise []string

func (e *Expertise) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return fmt.Errorf("area_expertise: %w", err)
		}
		single = strings.TrimSpace(single)
		if single == "" {
			*e = Expertise{}
			return nil
		}
		*e = Expertise{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("area_expertise: %w", err)
	}
	out := make(Expertise, 0, len(list))
	for _, tag := range list {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	*e = out
	return nil
}

// Has reports whether tag is one of the dentist's expertise labels.
func (e Expertise) Has(tag string) bool {
	for _, t := range e {
		if t == tag {
			return true
		}
	}
	return false
}

func (e Expertise) String() string {
	return strings.Join(e, ", ")
}

type Dentist struct {
	ID             primitive.ObjectID `json:"_id"`
	Name           string             `json:"name"`
	AreaExpertise  Expertise          `json:"area_expertise"`
	YearExperience int                `json:"year_experience"`
	StartingPrice  float64            `json:"StartingPrice"`
	Picture        string             `json:"picture"`
	Ratings        []Review           `json:"rating,omitempty"`
}

// RatingSummary is what the profile pages show about a dentist's reviews.
type RatingSummary struct {
	Count   int    `json:"count"`
	Average string `json:"average"`
}

// Summarize counts the ratings and formats their mean to one decimal, or N/A without any.
func Summarize(reviews []Review) RatingSummary {
	if len(reviews) == 0 {
		return RatingSummary{Average: "N/A"}
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return RatingSummary{
		Count:   len(reviews),
		Average: fmt.Sprintf("%.1f", float64(total)/float64(len(reviews))),
	}
}
