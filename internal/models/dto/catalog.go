package dto

// MovieRequest is the body of movie create and update calls.
type MovieRequest struct {
	Title       string   `json:"title"`
	ReleaseDate string   `json:"releaseDate"`
	Rating      *float64 `json:"rating"`
	Description string   `json:"description"`
	GenreID     int64    `json:"genreId"`
	DirectorID  int64    `json:"directorId"`
	VideoLink   string   `json:"videoLink"`
}

type MovieCreatedResponse struct {
	Message string `json:"message"`
	MovieID int64  `json:"movieId"`
}

type MovieActorsRequest struct {
	MovieID  int64   `json:"movieId"`
	ActorIDs []int64 `json:"actorIds"`
}

type VideoLinkResponse struct {
	VideoLink string `json:"videoLink"`
}

type GenreRequest struct {
	GenreName string `json:"genreName"`
}

type GenreCreatedResponse struct {
	Message string `json:"message"`
	GenreID int64  `json:"genreId"`
}

type ActorRequest struct {
	ActorName   string `json:"actorName"`
	DateOfBirth string `json:"dateOfBirth"`
}

type ActorCreatedResponse struct {
	Message string `json:"message"`
	ActorID int64  `json:"actorId"`
}

type DirectorRequest struct {
	DirectorName string `json:"directorName"`
}

type DirectorCreatedResponse struct {
	Message    string `json:"message"`
	DirectorID int64  `json:"directorId"`
}
