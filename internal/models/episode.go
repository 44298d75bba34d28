package models

import "fmt"

// Episode is the normalized display record for one episode of a show
type Episode struct {
	ID     EpisodeID `json:"id"`
	Name   string    `json:"name"`
	Season int       `json:"season"`
	Number int       `json:"number"`
}

// Label formats the episode the way the episode list displays it.
func (e Episode) Label() string {
	return fmt.Sprintf("%s (season %d, number %d)", e.Name, e.Season, e.Number)
}
