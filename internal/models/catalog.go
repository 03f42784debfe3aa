package models

// Genre is a catalog lookup row.
type Genre struct {
	ID   int64  `json:"GenreID"`
	Name string `json:"GenreName"`
}

// Director is a catalog lookup row.
type Director struct {
	ID   int64  `json:"DirectorID"`
	Name string `json:"DirectorName"`
}

// Actor is a performer that can be credited on movies. DateOfBirth is YYYY-MM-DD.
type Actor struct {
	ID          int64  `json:"ActorID"`
	Name        string `json:"ActorName"`
	DateOfBirth string `json:"DateOfBirth"`
}

// Movie is a catalog item. GenreName and DirectorName are resolved for display
// when the movie is listed and are ignored on writes.
type Movie struct {
	ID           int64    `json:"MovieID"`
	Title        string   `json:"Title"`
	ReleaseDate  string   `json:"ReleaseDate,omitempty"`
	Rating       *float64 `json:"Rating"`
	Description  string   `json:"Description"`
	VideoLink    string   `json:"VideoLink"`
	GenreID      int64    `json:"GenreID"`
	DirectorID   int64    `json:"DirectorID"`
	GenreName    string   `json:"GenreName,omitempty"`
	DirectorName string   `json:"DirectorName,omitempty"`
}
