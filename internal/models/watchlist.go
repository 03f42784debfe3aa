package models

import "time"

// WatchlistEntry is one saved movie joined with the fields the account page shows.
type WatchlistEntry struct {
	MovieID     int64     `json:"MovieID"`
	Title       string    `json:"Title"`
	ReleaseDate string    `json:"ReleaseDate,omitempty"`
	Description string    `json:"Description"`
	DateAdded   time.Time `json:"DateAdded"`
}
