package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	Dentist   Ref       `json:"dentist"`
	User      Ref       `json:"user"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
}
