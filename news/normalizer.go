// Package news turns raw provider news records into a deduplicated,
// display-ready headline list.
package news

import (
	"net/url"

	"insight-alpha/models"
)

const (
	// CandidateCap bounds how many titles are extracted from one raw batch,
	// regardless of batch length. Load shedding against oversized feeds.
	CandidateCap = 20

	// DisplayCap bounds how many headlines are returned for display.
	DisplayCap = 5

	searchBaseURL = "https://www.google.com/search"
)

// Result holds the normalizer output for one raw batch. Titles carries every
// accepted title (up to CandidateCap) for sentiment scoring; Display carries
// the first DisplayCap headlines with resolved links.
type Result struct {
	Display []models.Headline
	Titles  []string
}

// Normalize extracts title/link pairs from a raw news batch, deduplicates by
// exact title match keeping the first occurrence, and preserves insertion
// order. Items with no resolvable title are skipped.
func Normalize(items []models.RawNewsItem) Result {
	return NormalizeWithCaps(items, CandidateCap, DisplayCap)
}

// NormalizeWithCaps is Normalize with explicit caps.
func NormalizeWithCaps(items []models.RawNewsItem, candidateCap, displayCap int) Result {
	res := Result{
		Display: make([]models.Headline, 0, displayCap),
		Titles:  make([]string, 0, candidateCap),
	}
	seen := make(map[string]struct{}, candidateCap)

	for _, item := range items {
		if len(res.Titles) >= candidateCap {
			break
		}

		title := resolveTitle(item)
		if title == "" {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		res.Titles = append(res.Titles, title)

		if len(res.Display) < displayCap {
			res.Display = append(res.Display, models.Headline{
				Title: title,
				Link:  resolveLink(item, title),
			})
		}
	}

	return res
}

// resolveTitle prefers the top-level title and falls back to the nested
// content title used by the newer feed schema.
func resolveTitle(item models.RawNewsItem) string {
	if item.Title != "" {
		return item.Title
	}
	if item.Content != nil {
		return item.Content.Title
	}
	return ""
}

// resolveLink walks the fallback chain: direct link, click-through URL,
// canonical URL, then a synthesized web search for the title.
func resolveLink(item models.RawNewsItem, title string) string {
	if item.Link != "" {
		return item.Link
	}
	if c := item.Content; c != nil {
		if c.ClickThroughURL != nil && c.ClickThroughURL.URL != "" {
			return c.ClickThroughURL.URL
		}
		if c.CanonicalURL != nil && c.CanonicalURL.URL != "" {
			return c.CanonicalURL.URL
		}
	}
	return SearchURL(title)
}

// SearchURL synthesizes a web-search link for a headline with no usable URL.
func SearchURL(title string) string {
	return searchBaseURL + "?q=" + url.QueryEscape(title)
}
