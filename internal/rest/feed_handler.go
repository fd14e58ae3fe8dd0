package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dfryer1193/bghfeed/api"
	"github.com/dfryer1193/bghfeed/feed/application"
	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type FeedHandler struct {
	feed       *application.Feed
	sync       *application.PostSynchronizer
	categories *application.CategoryService
	details    *application.PostDetailService
}

func NewFeedHandler(
	feed *application.Feed,
	sync *application.PostSynchronizer,
	categories *application.CategoryService,
	details *application.PostDetailService,
) *FeedHandler {
	return &FeedHandler{
		feed:       feed,
		sync:       sync,
		categories: categories,
		details:    details,
	}
}

func (h *FeedHandler) RegisterRoutes(r chi.Router) {
	r.Route("/feed/v1", func(r chi.Router) {
		r.Get("/", h.GetFeed)
		r.Get("/stream", h.StreamFeed)
	})

	r.Route("/posts/v1", func(r chi.Router) {
		r.Get("/{postId}", h.GetPost)
	})

	r.Route("/categories/v1", func(r chi.Router) {
		r.Get("/", h.GetCategories)
	})
}

// GetFeed serves one feed page. The general feed is refreshed unless
// refresh=false; a category feed is always fetched live.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	categoryID, err := optionalInt(query.Get("category"))
	if err != nil || categoryID < 0 {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}

	refresh, err := optionalBool(query.Get("refresh"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid refresh flag")
		return
	}

	page, err := h.feed.Load(r.Context(), application.FeedRequest{
		CategoryID: categoryID,
		Query:      query.Get("q"),
		Refresh:    refresh,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Feed request abandoned")
		writeError(w, http.StatusServiceUnavailable, "feed unavailable")
		return
	}

	writeJSON(w, http.StatusOK, toAPIFeedPage(page))
}

// StreamFeed writes each snapshot as one NDJSON line as soon as it is
// produced. A failed refresh ends the stream with an error line.
func (h *FeedHandler) StreamFeed(w http.ResponseWriter, r *http.Request) {
	refresh, err := optionalBool(r.URL.Query().Get("refresh"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid refresh flag")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)

	stream := h.sync.StreamPosts(r.Context(), refresh)
	for stream.Next() {
		snapshot := stream.Snapshot()
		line := api.Snapshot{
			Origin: string(snapshot.Origin),
			Posts:  toAPIPosts(snapshot.Posts),
		}
		if err := enc.Encode(line); err != nil {
			log.Warn().Err(err).Msg("Client went away during post stream")
			return
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			log.Warn().Err(err).Msg("Failed to flush post stream")
			return
		}
	}

	if err := stream.Err(); err != nil {
		_ = enc.Encode(api.StreamError{Error: err.Error()})
	}
}

func (h *FeedHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "postId"))
	if err != nil || postID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	detail, err := h.details.GetPostDetail(r.Context(), postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusBadGateway, "could not load post")
		return
	}

	writeJSON(w, http.StatusOK, toAPIPostDetail(detail))
}

// GetCategories lists every category, or only the top N with ?top=N.
func (h *FeedHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	top, err := optionalInt(r.URL.Query().Get("top"))
	if err != nil || top < 0 {
		writeError(w, http.StatusBadRequest, "invalid top")
		return
	}

	var categories []domain.Category
	if top > 0 {
		categories, err = h.categories.Top(r.Context(), top)
	} else {
		categories, err = h.categories.List(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "could not load categories")
		return
	}

	writeJSON(w, http.StatusOK, toAPICategories(categories))
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func optionalBool(raw string, fallback bool) (bool, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseBool(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Error{Error: message})
}
