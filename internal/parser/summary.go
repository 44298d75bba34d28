package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SummaryText returns the visible text of a TVMaze summary. Summaries arrive
// as HTML fragments such as "<p><b>Batman</b> fights crime.</p>"; the result
// has tags removed and whitespace collapsed. Text that fails to parse is
// returned trimmed but otherwise unchanged.
func SummaryText(summary string) string {
	if !strings.Contains(summary, "<") {
		return collapseSpace(summary)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(summary))
	if err != nil {
		return strings.TrimSpace(summary)
	}

	// Keep paragraph boundaries readable once tags are gone.
	doc.Find("p, br, li").Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml(" ")
	})

	return collapseSpace(doc.Find("body").Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
