// Package render projects panel state to HTML and plain text. Every function
// is a pure function of its input: the same data always produces the same
// bytes.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/showfinder/showfinder/internal/models"
	"github.com/showfinder/showfinder/internal/panel"
	"github.com/showfinder/showfinder/internal/parser"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"summaryText": parser.SummaryText,
}).ParseFS(templateFiles, "templates/*.tmpl"))

// DefaultTitle is the page heading used when PageData.Title is empty.
const DefaultTitle = "TV Show Search"

// PageData is everything the full page needs.
type PageData struct {
	Title    string
	Query    string
	Shows    panel.View[models.Show]
	Episodes panel.View[models.Episode]
}

// Page writes the full HTML document: search form, show cards and episode list.
func Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = DefaultTitle
	}
	return execute(w, "page", data)
}

// PopulateShows writes the #shows-list container with one card per show, in
// order. Each card carries its show id and an Episodes control.
func PopulateShows(w io.Writer, shows []models.Show) error {
	return execute(w, "shows-list", shows)
}

// PopulateEpisodes writes the #episodes-area wrapper holding one list item per
// episode. The wrapper is hidden unless visible is set.
func PopulateEpisodes(w io.Writer, episodes []models.Episode, visible bool) error {
	return execute(w, "episodes-area", panel.View[models.Episode]{Items: episodes, Visible: visible})
}

// ShowsPanel writes the shows list together with the panel's error message.
func ShowsPanel(w io.Writer, view panel.View[models.Show]) error {
	return execute(w, "shows-panel", view)
}

// EpisodesPanel writes the episodes wrapper together with the panel's error
// message. A panel holding an error is rendered visible so the message is seen.
func EpisodesPanel(w io.Writer, view panel.View[models.Episode]) error {
	return execute(w, "episodes-area", view)
}

// execute renders into a buffer first so a template error never leaves a
// half-written response.
func execute(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
