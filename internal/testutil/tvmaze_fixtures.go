package testutil

import (
	"encoding/json"
)

// StringPtr is a helper for creating *string values in tests
func StringPtr(v string) *string {
	return &v
}

// IntPtr is a helper for creating *int values in tests
func IntPtr(v int) *int {
	return &v
}

// ShowOptions describes one raw TVMaze search result. Nil pointers are left
// out of the generated JSON entirely.
type ShowOptions struct {
	ID          interface{}
	Name        *string
	Summary     *string
	ImageMedium *string
	NullImage   bool
	OmitShow    bool
}

// EpisodeOptions describes one raw TVMaze episode.
type EpisodeOptions struct {
	ID     interface{}
	Name   *string
	Season *int
	Number *int
}

// GenerateSearchJSON builds a /search/shows response body shaped like the
// real TVMaze API.
func GenerateSearchJSON(shows []ShowOptions) string {
	results := make([]map[string]interface{}, 0, len(shows))
	for i, opt := range shows {
		result := map[string]interface{}{"score": 1.0 - float64(i)*0.1}
		if !opt.OmitShow {
			show := map[string]interface{}{
				"url":      "https://www.tvmaze.com/shows/x",
				"type":     "Scripted",
				"language": "English",
			}
			if opt.ID != nil {
				show["id"] = opt.ID
			}
			if opt.Name != nil {
				show["name"] = *opt.Name
			}
			if opt.Summary != nil {
				show["summary"] = *opt.Summary
			}
			switch {
			case opt.ImageMedium != nil:
				show["image"] = map[string]string{
					"medium":   *opt.ImageMedium,
					"original": *opt.ImageMedium + "?original",
				}
			case opt.NullImage:
				show["image"] = nil
			}
			result["show"] = show
		}
		results = append(results, result)
	}
	return mustJSON(results)
}

// GenerateEpisodesJSON builds a /shows/{id}/episodes response body.
func GenerateEpisodesJSON(episodes []EpisodeOptions) string {
	results := make([]map[string]interface{}, 0, len(episodes))
	for _, opt := range episodes {
		ep := map[string]interface{}{
			"airdate": "2020-01-01",
			"runtime": 60,
		}
		if opt.ID != nil {
			ep["id"] = opt.ID
		}
		if opt.Name != nil {
			ep["name"] = *opt.Name
		}
		if opt.Season != nil {
			ep["season"] = *opt.Season
		}
		if opt.Number != nil {
			ep["number"] = *opt.Number
		}
		results = append(results, ep)
	}
	return mustJSON(results)
}

// Episode is a shorthand for a fully populated EpisodeOptions.
func Episode(id int, name string, season, number int) EpisodeOptions {
	return EpisodeOptions{ID: id, Name: StringPtr(name), Season: IntPtr(season), Number: IntPtr(number)}
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
