package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"neighborhood-share/internal/catalog"
	"neighborhood-share/internal/fixtures"
	"neighborhood-share/internal/model"
	"neighborhood-share/internal/session"
)

// listingDetail is the detail overlay: the listing, its resolvable related
// items and whether this session liked it.
type listingDetail struct {
	model.Listing
	Related []model.Listing `json:"related"`
	Liked   bool            `json:"liked"`
}

type homeFeed struct {
	User     model.UserSummary `json:"user"`
	Chips    []string          `json:"chips"`
	Category string            `json:"category"`
	Query    string            `json:"query"`
	Featured []model.Listing   `json:"featured,omitempty"`
	New      []model.Listing   `json:"new"`
	Feed     []model.Listing   `json:"feed"`
	Liked    []string          `json:"liked"`
}

// GET /api/listings?category=&q=
func (a *api) listListings(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("category")
	if selector == "" {
		selector = model.SelectorAll
	}
	out := catalog.Filter(a.Listings, selector, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    out,
		"count":   len(out),
	})
}

// GET /api/listings/{id}
func (a *api) getListing(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	l, ok := catalog.Resolve(a.Listings, id)
	if !ok {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}

	// Read-only; the overlay is opened through PUT /api/session/view.
	st, err := a.Sessions.Get(r.Context(), session.ID(r.Context()))
	if err != nil {
		a.Logger.Warn("load session for detail failed", zap.Error(err))
	}

	writeData(w, http.StatusOK, listingDetail{
		Listing: l,
		Related: a.related(l),
		Liked:   st.Home.IsLiked(id),
	})
}

// GET /api/listings/{id}/related
func (a *api) relatedListings(w http.ResponseWriter, r *http.Request) {
	l, ok := catalog.Resolve(a.Listings, mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	writeData(w, http.StatusOK, a.related(l))
}

// related drops related ids that resolve to nothing and logs them.
func (a *api) related(l model.Listing) []model.Listing {
	related, missing := catalog.Related(a.Listings, l)
	if len(missing) > 0 {
		a.Logger.Debug("listing links to unknown related items",
			zap.String("listing", l.ID),
			zap.Strings("missing", missing))
	}
	return related
}

// POST /api/listings/{id}/like
func (a *api) toggleLike(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var liked bool
	_, err := a.Sessions.Update(r.Context(), session.ID(r.Context()), func(st *session.State) {
		liked = st.Home.ToggleLike(id)
	})
	if err != nil {
		a.Logger.Error("toggle like failed", zap.String("listing", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update likes")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"id": id, "liked": liked})
}

// GET /api/likes
func (a *api) listLikes(w http.ResponseWriter, r *http.Request) {
	st, err := a.Sessions.Get(r.Context(), session.ID(r.Context()))
	if err != nil {
		a.Logger.Error("load session failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load likes")
		return
	}
	liked := st.Home.Liked
	if liked == nil {
		liked = []string{}
	}
	writeData(w, http.StatusOK, liked)
}

type viewUpdate struct {
	Category *string `json:"category"`
	Query    *string `json:"query"`
	Detail   *string `json:"detail"`
}

// PUT /api/session/view
func (a *api) updateView(w http.ResponseWriter, r *http.Request) {
	var req viewUpdate
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	st, err := a.Sessions.Update(r.Context(), session.ID(r.Context()), func(st *session.State) {
		if req.Category != nil {
			st.Home.SelectCategory(*req.Category)
		}
		if req.Query != nil {
			st.Home.SetQuery(*req.Query)
		}
		if req.Detail != nil {
			if *req.Detail == "" {
				st.Home.CloseDetail()
			} else {
				st.Home.OpenDetail(a.Listings, *req.Detail)
			}
		}
	})
	if err != nil {
		a.Logger.Error("update view failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update view")
		return
	}
	writeData(w, http.StatusOK, st.Home)
}

// GET /api/home
func (a *api) home(w http.ResponseWriter, r *http.Request) {
	st, err := a.Sessions.Get(r.Context(), session.ID(r.Context()))
	if err != nil {
		a.Logger.Error("load session failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load home")
		return
	}
	v := st.Home
	feed := homeFeed{
		User:     fixtures.CurrentUser(),
		Chips:    fixtures.HomeChips(),
		Category: v.Category,
		Query:    v.Query,
		New:      catalog.New(a.Listings),
		Feed:     v.Visible(a.Listings),
		Liked:    v.Liked,
	}
	if v.ShowFeaturedSection(a.Listings) {
		feed.Featured = catalog.Featured(a.Listings)
	}
	if feed.Liked == nil {
		feed.Liked = []string{}
	}
	writeData(w, http.StatusOK, feed)
}
