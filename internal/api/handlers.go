package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/capability"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/export"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/policy"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
	"github.com/engalejandrovargas/GoalsAI-sub002/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// GoalService is the goal orchestration the handlers drive.
type GoalService interface {
	Create(ctx context.Context, req types.CreateGoalRequest) (*types.GoalWithDashboard, error)
	Get(ctx context.Context, id string) (*types.GoalWithDashboard, error)
	List(ctx context.Context, userID string) ([]types.GoalSnapshot, error)
	UpdateProgress(ctx context.Context, id string, progress float64) (*types.GoalWithDashboard, error)
	Regenerate(ctx context.Context, id string) (*types.GoalWithDashboard, error)
	Count(ctx context.Context) (int64, error)
	Categories() []policy.Policy
	Modules() []capability.Capability
}

// Handler implements the API handlers
type Handler struct {
	goals    GoalService
	uploader export.Uploader
	version  string
}

// NewHandler creates a new Handler. A nil uploader disables export.
func NewHandler(goals GoalService, uploader export.Uploader, version string) *Handler {
	if uploader == nil {
		uploader = &export.NoopUploader{}
	}
	return &Handler{
		goals:    goals,
		uploader: uploader,
		version:  version,
	}
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.goals.Count(r.Context())
	if err != nil {
		MapError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:     "healthy",
		Version:    h.version,
		GoalCount:  count,
		Categories: len(h.goals.Categories()),
		Modules:    len(h.goals.Modules()),
	})
}

// Categories handles GET /api/v1/categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": h.goals.Categories()})
}

// Modules handles GET /api/v1/modules
func (h *Handler) Modules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"modules": h.goals.Modules()})
}

// CreateGoal handles POST /api/v1/goals
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req types.CreateGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if errs := validation.ValidateCreateGoalRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	result, err := h.goals.Create(r.Context(), req)
	if err != nil {
		MapError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/goals/"+result.Goal.ID)
	writeJSON(w, http.StatusCreated, result)
}

// ListGoals handles GET /api/v1/goals?user_id=
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goals.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.GoalListResponse{Goals: goals, Total: len(goals)})
}

// GetGoal handles GET /api/v1/goals/{id}
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	result, err := h.goals.Get(r.Context(), GoalIDFromContext(r.Context()))
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// UpdateProgress handles POST /api/v1/goals/{id}/progress
func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateProgressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if errs := validation.ValidateProgressRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	result, err := h.goals.UpdateProgress(r.Context(), GoalIDFromContext(r.Context()), *req.Progress)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RegenerateGoal handles POST /api/v1/goals/{id}/regenerate
func (h *Handler) RegenerateGoal(w http.ResponseWriter, r *http.Request) {
	result, err := h.goals.Regenerate(r.Context(), GoalIDFromContext(r.Context()))
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExportGoal handles POST /api/v1/goals/{id}/export. The current dashboard
// is uploaded and a pre-signed download URL returned.
func (h *Handler) ExportGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := GoalIDFromContext(ctx)

	result, err := h.goals.Get(ctx, id)
	if err != nil {
		MapError(w, r, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		MapError(w, r, fmt.Errorf("encode dashboard: %w", err))
		return
	}
	if err := h.uploader.Upload(ctx, id, data); err != nil {
		MapError(w, r, err)
		return
	}

	link, expiresAt, err := h.uploader.PresignedURL(ctx, id)
	if err != nil {
		MapError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.ExportResponse{
		GoalID:    id,
		URL:       link,
		ExpiresAt: expiresAt,
	})
}

// decodeBody decodes a JSON request body into v. On failure it writes the
// problem response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteProblem(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("api: failed to encode response", "error", err)
	}
}
