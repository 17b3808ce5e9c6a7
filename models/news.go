package models

// RawNewsItem is a news record as returned by the provider. The feed mixes
// two generations of the API schema, so every nested structure is optional
// and must be nil-checked before field access.
type RawNewsItem struct {
	Title   string          `json:"title,omitempty"`
	Link    string          `json:"link,omitempty"`
	Content *RawNewsContent `json:"content,omitempty"`
}

// RawNewsContent is the nested payload carried by newer-schema items.
type RawNewsContent struct {
	Title           string     `json:"title,omitempty"`
	ClickThroughURL *RawNewsURL `json:"clickThroughUrl,omitempty"`
	CanonicalURL    *RawNewsURL `json:"canonicalUrl,omitempty"`
}

// RawNewsURL wraps a URL field inside nested news content.
type RawNewsURL struct {
	URL string `json:"url,omitempty"`
}

// Headline is a normalized, display-ready news item. Title is non-empty and
// unique within one batch; Link always resolves to something clickable.
type Headline struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}
