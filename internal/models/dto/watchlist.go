package dto

type AddToWatchlistRequest struct {
	UserID     int64  `json:"userId"`
	MovieTitle string `json:"movieTitle"`
}

type RemoveFromWatchlistResponse struct {
	Message string `json:"message"`
	Removed bool   `json:"removed"`
}

type WatchlistContainsResponse struct {
	InWatchlist bool `json:"inWatchlist"`
}
