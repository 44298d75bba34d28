package models

// SearchResult is one element of the TVMaze /search/shows response.
// Pointer fields distinguish an absent value from a zero value.
type SearchResult struct {
	Score float64  `json:"score"`
	Show  *RawShow `json:"show"`
}

// RawShow is the subset of the TVMaze show object that the widget uses.
type RawShow struct {
	ID      ShowID    `json:"id"`
	Name    *string   `json:"name"`
	Summary *string   `json:"summary"`
	Image   *RawImage `json:"image"`
}

// RawImage holds the TVMaze image URLs for a show.
type RawImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// RawEpisode is one element of the TVMaze /shows/{id}/episodes response.
type RawEpisode struct {
	ID     EpisodeID `json:"id"`
	Name   *string   `json:"name"`
	Season *int      `json:"season"`
	Number *int      `json:"number"`
}
