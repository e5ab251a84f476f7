package settlement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akshat-jain/splitr/internal/balance"
	"github.com/akshat-jain/splitr/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Record)
	r.Get("/group/{groupId}", h.ListByGroup)
	r.Get("/group/{groupId}/balances", h.Balances)
	r.Get("/group/{groupId}/suggestions", h.Suggestions)

	return r
}

// Record handles POST /settlements
// @Summary      Record a settlement
// @Description  Record a confirmed real-world payment between two group members
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body RecordSettlementRequest true "Settlement record request"
// @Success      201 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	created, err := h.service.Record(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotSettleSelf), errors.Is(err, ErrInvalidAmount):
			response.UnprocessableEntity(w, err.Error())
		case errors.Is(err, ErrNotGroupMember):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalError(w, "Failed to record settlement")
		}
		return
	}

	response.JSON(w, http.StatusCreated, created.ToResponse())
}

// ListByGroup handles GET /settlements/group/{groupId}
// @Summary      List group settlements
// @Description  Get a paginated list of a group's recorded settlements, newest first
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Router       /settlements/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupIDStr := chi.URLParam(r, "groupId")
	groupID, err := strconv.ParseInt(groupIDStr, 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	settlements, total, err := h.service.ListByGroupID(r.Context(), groupID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list settlements")
		return
	}

	settlementResponses := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		settlementResponses[i] = s.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, settlementResponses, meta)
}

// Balances handles GET /settlements/group/{groupId}/balances
// @Summary      Group balances
// @Description  Recompute every member's net balance from the group's ledger
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]BalanceResponse}
// @Failure      500 {object} response.APIResponse
// @Router       /settlements/group/{groupId}/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	groupIDStr := chi.URLParam(r, "groupId")
	groupID, err := strconv.ParseInt(groupIDStr, 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.Balances(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, balance.ErrUnknownMember) {
			// The snapshot references a member outside the roster: a data
			// consistency fault, not a user mistake
			response.InternalError(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	balanceResponses := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		balanceResponses[i] = BalanceToResponse(b)
	}

	response.JSON(w, http.StatusOK, balanceResponses)
}

// Suggestions handles GET /settlements/group/{groupId}/suggestions
// @Summary      Settlement suggestions
// @Description  Compute the minimal set of payments that settles the group
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]SuggestionResponse}
// @Router       /settlements/group/{groupId}/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	groupIDStr := chi.URLParam(r, "groupId")
	groupID, err := strconv.ParseInt(groupIDStr, 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	suggestions, err := h.service.Suggestions(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, balance.ErrUnknownMember) {
			response.InternalError(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute suggestions")
		return
	}

	suggestionResponses := make([]*SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		suggestionResponses[i] = SuggestionToResponse(s)
	}

	response.JSON(w, http.StatusOK, suggestionResponses)
}
