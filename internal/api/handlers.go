package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/membank/internal/apperr"
	"github.com/torvik/membank/internal/docservice"
	"github.com/torvik/membank/internal/index"
	"github.com/torvik/membank/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *docservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *docservice.Service) *Handler {
	return &Handler{svc: svc}
}

// docPath extracts the document path from the URL (everything after /api/docs/).
// Supports encoded slashes from API clients (e.g. core%2Fprojectbrief.md).
func docPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListDocs handles GET /api/docs.
func (h *Handler) ListDocs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	category := q.Get("category")
	tag := q.Get("tag")

	items, total, err := h.svc.ListDocs(r.Context(), limit, offset, category, tag)
	if err != nil {
		slog.Error("list docs failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if items == nil {
		items = []DocListItem{}
	}
	writeJSON(w, http.StatusOK, DocListResponse{Docs: items, Total: total})
}

// GetDoc handles GET /api/docs/*.
func (h *Handler) GetDoc(w http.ResponseWriter, r *http.Request) {
	path := docPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	doc, err := h.svc.GetDoc(r.Context(), path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get doc failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Search handles GET /api/search (SQLite cache, snippets).
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Grep handles GET /api/grep (direct line scan, same semantics as the CLI).
func (h *Handler) Grep(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	matches, err := h.svc.Grep(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidArgument):
			writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		default:
			slog.Error("grep failed", slog.String("query", q), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if matches == nil {
		matches = []models.Match{}
	}
	writeJSON(w, http.StatusOK, GrepResponse{Matches: matches})
}

// Categories handles GET /api/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		slog.Error("categories failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: cats})
}

// Tree handles GET /api/categories/{name}/tree.
func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tree, err := h.svc.Tree(r.Context(), name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalidArgument) {
			writeJSON(w, http.StatusNotFound, errorBody("category not found"))
		} else {
			slog.Error("tree failed", slog.String("category", name), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, TreeResponse{Category: name, Tree: tree})
}

// RebuildIndex handles POST /api/index/rebuild.
func (h *Handler) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.RebuildSnapshot(r.Context())
	if err != nil {
		slog.Error("index rebuild failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
