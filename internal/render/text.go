package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/showfinder/showfinder/internal/models"
	"github.com/showfinder/showfinder/internal/parser"
)

var (
	showTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Bold(true)
	showIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#636E72"))
	summaryStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Width(80)
	episodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1D3"))
)

// ShowsText writes one block per show: id, name, summary text and image URL.
func ShowsText(w io.Writer, shows []models.Show) error {
	var b strings.Builder
	if len(shows) == 0 {
		b.WriteString("No shows found.\n")
	}
	for i, show := range shows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", showIDStyle.Render("["+show.ID.String()+"]"), showTitleStyle.Render(show.Name))
		b.WriteString(summaryStyle.Render(parser.SummaryText(show.Summary)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s\n", show.Image)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// EpisodesText writes one line per episode, in order.
func EpisodesText(w io.Writer, episodes []models.Episode) error {
	var b strings.Builder
	if len(episodes) == 0 {
		b.WriteString("No episodes found.\n")
	}
	for _, episode := range episodes {
		fmt.Fprintf(&b, "- %s\n", episodeStyle.Render(episode.Label()))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
