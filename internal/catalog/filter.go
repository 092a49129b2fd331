// Package catalog derives what the home feed shows from the listing
// fixture: the category/search filter, identifier resolution for the
// detail view, related-item links and the featured/new sections.
package catalog

import (
	"slices"
	"strings"

	"neighborhood-share/internal/model"
)

// Filter returns the listings that pass both the category selector and the
// search query, in source order. The result never aliases listings.
//
// The selector "All" passes everything, "Featured" and "New" test the
// listing's flags, and any other value must equal Listing.Category exactly.
// The query is matched case-insensitively as a substring of the title,
// owner or short description; an empty query matches every listing.
func Filter(listings []model.Listing, selector, query string) []model.Listing {
	q := strings.ToLower(query)
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if matchesCategory(l, selector) && matchesQuery(l, q) {
			out = append(out, l)
		}
	}
	return out
}

func matchesCategory(l model.Listing, selector string) bool {
	switch {
	case selector == model.SelectorAll:
		return true
	case selector == model.SelectorFeatured && l.IsFeatured:
		return true
	case selector == model.SelectorNew && l.IsNew:
		return true
	}
	return l.Category == selector
}

// q must already be lowercased.
func matchesQuery(l model.Listing, q string) bool {
	return strings.Contains(strings.ToLower(l.Title), q) ||
		strings.Contains(strings.ToLower(l.Owner), q) ||
		strings.Contains(strings.ToLower(l.Description), q)
}

// Resolve returns the first listing whose ID equals id.
func Resolve(listings []model.Listing, id string) (model.Listing, bool) {
	for _, l := range listings {
		if l.ID == id {
			return l, true
		}
	}
	return model.Listing{}, false
}

// Related returns the listings named in l.RelatedItems, in source order and
// each at most once. Identifiers with no matching listing are returned in
// missing so callers can report them.
func Related(listings []model.Listing, l model.Listing) (related []model.Listing, missing []string) {
	want := make(map[string]bool, len(l.RelatedItems))
	for _, id := range l.RelatedItems {
		want[id] = false
	}
	related = make([]model.Listing, 0, len(want))
	for _, c := range listings {
		if found, ok := want[c.ID]; ok && !found {
			want[c.ID] = true
			related = append(related, c)
		}
	}
	for _, id := range l.RelatedItems {
		if found := want[id]; !found && !slices.Contains(missing, id) {
			missing = append(missing, id)
		}
	}
	return related, missing
}

// Featured returns the featured listings in source order.
func Featured(listings []model.Listing) []model.Listing {
	return Filter(listings, model.SelectorFeatured, "")
}

// New returns the listings flagged as new in source order.
func New(listings []model.Listing) []model.Listing {
	return Filter(listings, model.SelectorNew, "")
}
