package handler

import (
	"net/http"
	"strconv"

	"github.com/templui/goalpace/internal/ctxkeys"
	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/service"
	"github.com/templui/goalpace/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	filters, err := parseGoalFilters(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goals, err := h.goalService.List(r.Context(), userID, filters)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var input service.CreateGoalInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	progress, err := h.goalService.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, progress)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	progress, err := h.goalService.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var input service.UpdateGoalInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	progress, err := h.goalService.Update(r.Context(), r.PathValue("id"), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.goalService.Delete(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) CanCreate(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	ok, err := h.goalService.CanCreate(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"can_create": ok,
		"max_active": model.MaxActiveGoals,
	})
}

func parseGoalFilters(r *http.Request) (model.GoalFilters, error) {
	var filters model.GoalFilters
	query := r.URL.Query()

	if v := query.Get("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return filters, &validation.Error{Field: "is_active", Message: "must be true or false"}
		}
		filters.IsActive = &active
	}

	if v := query.Get("period_type"); v != "" {
		periodType := model.PeriodType(v)
		if !periodType.Valid() {
			return filters, &validation.Error{Field: "period_type", Message: "is not a known period type"}
		}
		filters.PeriodType = &periodType
	}

	if v := query.Get("target_type"); v != "" {
		targetType := model.TargetType(v)
		if !targetType.Valid() {
			return filters, &validation.Error{Field: "target_type", Message: "is not a known target type"}
		}
		filters.TargetType = &targetType
	}

	return filters, nil
}
