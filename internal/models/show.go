package models

const (
	// PlaceholderSummary is displayed when TVMaze has no summary for a show.
	PlaceholderSummary = "No summary available."
	// PlaceholderImage is displayed when TVMaze has no image for a show.
	PlaceholderImage = "https://tinyurl.com/tv-missing"
)

// Show is the normalized display record for one search result
type Show struct {
	ID      ShowID `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Image   string `json:"image"`
}
