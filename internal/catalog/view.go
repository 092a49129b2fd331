package catalog

import (
	"slices"

	"neighborhood-share/internal/model"
)

// View is the home screen's per-session state: the selected category chip,
// the search text, the liked listings and the listing open in the detail
// overlay. The zero value is not ready; use NewView.
type View struct {
	Category string   `json:"category"`
	Query    string   `json:"query"`
	Liked    []string `json:"liked"`
	Detail   string   `json:"detail,omitempty"`
}

func NewView() View {
	return View{Category: model.SelectorAll}
}

func (v *View) SelectCategory(selector string) {
	v.Category = selector
}

func (v *View) SetQuery(q string) {
	v.Query = q
}

// ToggleLike adds id to the liked set if absent and removes it otherwise.
// It reports whether id is liked afterwards. Ids are not checked against
// the catalog.
func (v *View) ToggleLike(id string) bool {
	if i := slices.Index(v.Liked, id); i >= 0 {
		v.Liked = slices.Delete(v.Liked, i, i+1)
		return false
	}
	v.Liked = append(v.Liked, id)
	return true
}

func (v View) IsLiked(id string) bool {
	return slices.Contains(v.Liked, id)
}

// OpenDetail selects the listing shown in the detail overlay. Unknown ids
// leave the view unchanged and return false.
func (v *View) OpenDetail(listings []model.Listing, id string) bool {
	if _, ok := Resolve(listings, id); !ok {
		return false
	}
	v.Detail = id
	return true
}

func (v *View) CloseDetail() {
	v.Detail = ""
}

// DetailListing returns the listing open in the detail overlay, if any.
func (v View) DetailListing(listings []model.Listing) (model.Listing, bool) {
	if v.Detail == "" {
		return model.Listing{}, false
	}
	return Resolve(listings, v.Detail)
}

// Visible is the feed for the current selector and query.
func (v View) Visible(listings []model.Listing) []model.Listing {
	selector := v.Category
	if selector == "" {
		selector = model.SelectorAll
	}
	return Filter(listings, selector, v.Query)
}

// ShowFeaturedSection reports whether the home feed renders the featured
// carousel above the filtered list.
func (v View) ShowFeaturedSection(listings []model.Listing) bool {
	return (v.Category == model.SelectorAll || v.Category == "") && len(Featured(listings)) > 0
}
