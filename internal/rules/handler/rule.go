package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"shutterbook/internal/rules/service"
	httputil "shutterbook/pkg/http"
	"shutterbook/pkg/logger"
	"shutterbook/pkg/model"
)

// RuleHandler is the admin surface for the recurring weekly schedule.
type RuleHandler struct {
	service service.RuleService
	log     *logger.Logger
}

func NewRuleHandler(service service.RuleService, log *logger.Logger) *RuleHandler {
	return &RuleHandler{
		service: service,
		log:     log,
	}
}

func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var rule model.AvailabilityRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		h.writeJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &rule); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, rule); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *RuleHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rule, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, rule); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *RuleHandler) ListByResource(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resourceID := r.URL.Query().Get("resource_id")

	rules, err := h.service.ListByResource(r.Context(), resourceID)
	if err != nil {
		h.writeError(w, "ListByResource", err)
		return
	}

	if err := httputil.WriteSuccess(w, rules); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByResource", "error", err)
	}
}

func (h *RuleHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.AvailabilityRuleUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RuleHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *RuleHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	if err := httputil.WriteJSON(w, status, data); err != nil {
		h.log.Error("failed to write JSON response", "status", status, "error", err)
	}
}

func (h *RuleHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/rules", h.Create)
	router.GET("/api/v1/rules", h.ListByResource)
	router.GET("/api/v1/rules/id/:id", h.GetByID)
	router.PATCH("/api/v1/rules/id/:id", h.Update)
	router.DELETE("/api/v1/rules/id/:id", h.Delete)
}
