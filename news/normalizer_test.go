package news

import (
	"fmt"
	"testing"

	"insight-alpha/models"
)

func TestNormalize_DedupFirstWins(t *testing.T) {
	items := []models.RawNewsItem{
		{Title: "Acme beats earnings", Link: "https://example.com/first"},
		{Title: "Acme beats earnings", Link: "https://example.com/second"},
		{Title: "Acme announces buyback", Link: "https://example.com/buyback"},
	}

	res := Normalize(items)

	if len(res.Titles) != 2 {
		t.Fatalf("got %d titles, want 2", len(res.Titles))
	}
	if res.Display[0].Link != "https://example.com/first" {
		t.Errorf("duplicate replaced first occurrence, link = %q", res.Display[0].Link)
	}
}

func TestNormalize_DedupIsCaseSensitive(t *testing.T) {
	items := []models.RawNewsItem{
		{Title: "Acme Beats Earnings", Link: "https://example.com/a"},
		{Title: "acme beats earnings", Link: "https://example.com/b"},
	}

	res := Normalize(items)
	if len(res.Titles) != 2 {
		t.Errorf("got %d titles, want 2 distinct (case differs)", len(res.Titles))
	}
}

func TestNormalize_PreservesOrder(t *testing.T) {
	items := []models.RawNewsItem{
		{Title: "first", Link: "https://example.com/1"},
		{Title: "second", Link: "https://example.com/2"},
		{Title: "third", Link: "https://example.com/3"},
	}

	res := Normalize(items)
	want := []string{"first", "second", "third"}
	for i, title := range want {
		if res.Titles[i] != title {
			t.Errorf("Titles[%d] = %q, want %q", i, res.Titles[i], title)
		}
	}
}

func TestNormalize_Caps(t *testing.T) {
	items := make([]models.RawNewsItem, 30)
	for i := range items {
		items[i] = models.RawNewsItem{
			Title: fmt.Sprintf("headline %d", i),
			Link:  fmt.Sprintf("https://example.com/%d", i),
		}
	}

	res := Normalize(items)

	if len(res.Titles) != CandidateCap {
		t.Errorf("got %d titles, want candidate cap %d", len(res.Titles), CandidateCap)
	}
	if len(res.Display) != DisplayCap {
		t.Errorf("got %d display headlines, want display cap %d", len(res.Display), DisplayCap)
	}
}

func TestNormalize_CapCountsAcceptedNotSeen(t *testing.T) {
	// 3 raw items collapse to 2 accepted titles; the cap applies after dedup
	items := []models.RawNewsItem{
		{Title: "dup", Link: "https://example.com/a"},
		{Title: "dup", Link: "https://example.com/b"},
		{Title: "unique", Link: "https://example.com/c"},
	}

	res := NormalizeWithCaps(items, 2, 2)
	if len(res.Titles) != 2 {
		t.Errorf("got %d titles, want 2", len(res.Titles))
	}
	if res.Titles[1] != "unique" {
		t.Errorf("Titles[1] = %q, want %q", res.Titles[1], "unique")
	}
}

func TestNormalize_SkipsItemsWithoutTitle(t *testing.T) {
	items := []models.RawNewsItem{
		{Link: "https://example.com/untitled"},
		{Title: "has title", Link: "https://example.com/titled"},
		{Content: &models.RawNewsContent{}},
	}

	res := Normalize(items)
	if len(res.Titles) != 1 || res.Titles[0] != "has title" {
		t.Errorf("Titles = %v, want only the titled item", res.Titles)
	}
}

func TestNormalize_NestedContentTitle(t *testing.T) {
	items := []models.RawNewsItem{
		{Content: &models.RawNewsContent{Title: "nested schema title"}},
	}

	res := Normalize(items)
	if len(res.Titles) != 1 || res.Titles[0] != "nested schema title" {
		t.Errorf("Titles = %v, want nested content title", res.Titles)
	}
}

func TestResolveLink_FallbackChain(t *testing.T) {
	tests := []struct {
		name string
		item models.RawNewsItem
		want string
	}{
		{
			name: "direct link wins",
			item: models.RawNewsItem{
				Title: "t",
				Link:  "https://example.com/direct",
				Content: &models.RawNewsContent{
					ClickThroughURL: &models.RawNewsURL{URL: "https://example.com/click"},
				},
			},
			want: "https://example.com/direct",
		},
		{
			name: "click-through before canonical",
			item: models.RawNewsItem{
				Title: "t",
				Content: &models.RawNewsContent{
					Title:           "t",
					ClickThroughURL: &models.RawNewsURL{URL: "https://example.com/click"},
					CanonicalURL:    &models.RawNewsURL{URL: "https://example.com/canonical"},
				},
			},
			want: "https://example.com/click",
		},
		{
			name: "canonical when click-through empty",
			item: models.RawNewsItem{
				Title: "t",
				Content: &models.RawNewsContent{
					Title:        "t",
					CanonicalURL: &models.RawNewsURL{URL: "https://example.com/canonical"},
				},
			},
			want: "https://example.com/canonical",
		},
		{
			name: "search fallback when no URL anywhere",
			item: models.RawNewsItem{Title: "Acme Corp surges"},
			want: "https://www.google.com/search?q=Acme+Corp+surges",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Normalize([]models.RawNewsItem{tt.item})
			if len(res.Display) != 1 {
				t.Fatalf("got %d display headlines, want 1", len(res.Display))
			}
			if got := res.Display[0].Link; got != tt.want {
				t.Errorf("link = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchURL_EscapesQuery(t *testing.T) {
	got := SearchURL("A&B: 100% up?")
	want := "https://www.google.com/search?q=A%26B%3A+100%25+up%3F"
	if got != want {
		t.Errorf("SearchURL() = %q, want %q", got, want)
	}
}

func TestNormalize_EmptyBatch(t *testing.T) {
	res := Normalize(nil)
	if len(res.Titles) != 0 || len(res.Display) != 0 {
		t.Errorf("Normalize(nil) = %+v, want empty result", res)
	}
}
