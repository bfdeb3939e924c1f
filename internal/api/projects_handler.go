package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jmorrell/makerboard/internal/activity"
	"github.com/jmorrell/makerboard/internal/auth"
	"github.com/jmorrell/makerboard/internal/metrics"
	"github.com/jmorrell/makerboard/internal/project"
	"github.com/jmorrell/makerboard/internal/user"
)

// EventRecorder accepts listing interaction events for asynchronous
// persistence.
type EventRecorder interface {
	Record(ev activity.Event)
}

// ViewCounter reports how many view events were recorded for a listing.
type ViewCounter interface {
	ViewCount(ctx context.Context, projectID string) (int64, error)
}

// projectsHandler groups listing HTTP handlers.
type projectsHandler struct {
	projects *project.Service
	users    *user.Service
	events   EventRecorder
	views    ViewCounter
	metrics  *metrics.Metrics
}

func newProjectsHandler(projects *project.Service, users *user.Service, events EventRecorder, views ViewCounter, m *metrics.Metrics) *projectsHandler {
	return &projectsHandler{projects: projects, users: users, events: events, views: views, metrics: m}
}

// List handles GET /api/projects?q=...&category=...&skills=a,b&openRoles=true&sort=...
func (h *projectsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := project.ListingQuery{
		Text:         r.URL.Query().Get("q"),
		Category:     r.URL.Query().Get("category"),
		HasOpenRoles: r.URL.Query().Get("openRoles") == "true",
		SortBy:       r.URL.Query().Get("sort"),
	}
	if raw := r.URL.Query().Get("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.Skills = append(q.Skills, s)
			}
		}
	}

	projects, err := h.projects.Browse(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list projects")
		return
	}

	h.metrics.IncCatalogQuery(q.SortBy)

	if projects == nil {
		projects = []*project.Project{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
	})
}

// Get handles GET /api/projects/{id}. Each successful fetch records a view
// event; the token is optional here so anonymous views count too.
func (h *projectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.projects.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load project")
		return
	}

	h.events.Record(activity.Event{
		ProjectID: p.ID,
		UserID:    auth.UserIDFromContext(r.Context()),
		Kind:      activity.KindView,
	})
	h.metrics.IncListingEvent(activity.KindView)

	writeJSON(w, http.StatusOK, p)
}

// Stats handles GET /api/projects/{id}/stats.
func (h *projectsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.projects.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load project")
		return
	}

	views, err := h.views.ViewCount(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load project stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"projectId": id,
		"views":     views,
	})
}

// Create handles POST /api/projects.
func (h *projectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireAccount(w, r)
	if !ok {
		return
	}

	var req project.CreateInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	p, err := h.projects.Create(r.Context(), owner, req)
	if err != nil {
		if project.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to create project")
		return
	}

	h.metrics.IncProjectCreated()
	auditLog(r, "project.create", "project", p.ID, "title", p.Title)

	writeJSON(w, http.StatusCreated, p)
}

// ToggleBookmark handles PATCH /api/projects/{id}/bookmark.
func (h *projectsHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	uid := auth.UserIDFromContext(r.Context())

	bookmarked, err := h.projects.ToggleBookmark(r.Context(), uid, id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to toggle bookmark")
		return
	}

	kind := activity.KindBookmark
	if !bookmarked {
		kind = activity.KindUnbookmark
	}
	h.events.Record(activity.Event{ProjectID: id, UserID: uid, Kind: kind})
	h.metrics.IncListingEvent(kind)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"projectId":  id,
		"bookmarked": bookmarked,
	})
}

// AppendUpdate handles POST /api/projects/{id}/updates.
func (h *projectsHandler) AppendUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireAccount(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "content is required")
		return
	}

	p, err := h.projects.AppendUpdate(r.Context(), actor, id, req.Content)
	if err != nil {
		h.writeMutationError(w, err, "failed to post update")
		return
	}

	auditLog(r, "project.update", "project", p.ID)
	writeJSON(w, http.StatusCreated, p)
}

// AppendRole handles POST /api/projects/{id}/roles.
func (h *projectsHandler) AppendRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireAccount(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req project.OpenRole
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	p, err := h.projects.AppendRole(r.Context(), actor, id, req)
	if err != nil {
		if errors.Is(err, project.ErrTitleRequired) {
			writeError(w, http.StatusBadRequest, "validation_error", "role title is required")
			return
		}
		h.writeMutationError(w, err, "failed to add role")
		return
	}

	auditLog(r, "project.add_role", "project", p.ID, "role_title", req.Title)
	writeJSON(w, http.StatusCreated, p)
}

// AppendCollaborator handles POST /api/projects/{id}/collaborators.
func (h *projectsHandler) AppendCollaborator(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireAccount(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	member, err := h.users.GetByID(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load user")
		return
	}

	p, err := h.projects.AppendCollaborator(r.Context(), actor, id, member, req.Role)
	if err != nil {
		h.writeMutationError(w, err, "failed to add collaborator")
		return
	}

	auditLog(r, "project.add_collaborator", "project", p.ID, "member_id", member.ID)
	writeJSON(w, http.StatusCreated, p)
}

// requireAccount loads the authenticated user's account. The auth middleware
// guarantees a user id is present; the account may still have vanished.
func (h *projectsHandler) requireAccount(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	uid := auth.UserIDFromContext(r.Context())
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return nil, false
	}

	u, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "account not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
		return nil, false
	}
	return u, true
}

// writeMutationError maps the shared owner-gated mutation failures.
func (h *projectsHandler) writeMutationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, project.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "project not found")
	case errors.Is(err, project.ErrNotOwner):
		writeError(w, http.StatusForbidden, "forbidden", "only the project owner may modify the listing")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
}
