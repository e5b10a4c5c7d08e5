package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"ad-agency/internal/core/domain"
)

// Management endpoints: entity creation, status listings and the manual
// activate/deactivate override actions.

type brandRequest struct {
	Name          string          `json:"name"`
	DailyBudget   decimal.Decimal `json:"daily_budget"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
}

type brandOverviewResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	DailyBudget    decimal.Decimal `json:"daily_budget"`
	MonthlyBudget  decimal.Decimal `json:"monthly_budget"`
	DailySpend     decimal.Decimal `json:"daily_spend"`
	MonthlySpend   decimal.Decimal `json:"monthly_spend"`
	BudgetExceeded bool            `json:"budget_exceeded"`
}

type campaignRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"is_active,omitempty"`
}

type campaignStatusResponse struct {
	ID             int64  `json:"id"`
	BrandID        int64  `json:"brand_id"`
	Name           string `json:"name"`
	IsActive       bool   `json:"is_active"`
	WithinSchedule bool   `json:"within_schedule"`
}

type scheduleRequest struct {
	DayOfWeek int `json:"day_of_week"`
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

func (h *Handler) handleCreateBrand(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	brand := &domain.Brand{
		Name:          req.Name,
		DailyBudget:   req.DailyBudget,
		MonthlyBudget: req.MonthlyBudget,
	}
	if err := h.admin.CreateBrand(r.Context(), brand); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, brand)
}

// handleListBrands returns every brand with live daily/monthly spend
// and its budget-exceeded state.
func (h *Handler) handleListBrands(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.admin.ListBrandOverviews(r.Context(), h.engine.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := make([]brandOverviewResponse, 0, len(overviews))
	for _, o := range overviews {
		resp = append(resp, brandOverviewResponse{
			ID:             o.Brand.ID,
			Name:           o.Brand.Name,
			DailyBudget:    o.Brand.DailyBudget,
			MonthlyBudget:  o.Brand.MonthlyBudget,
			DailySpend:     o.DailySpend,
			MonthlySpend:   o.MonthlySpend,
			BudgetExceeded: o.BudgetExceeded,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	brandID, ok := h.pathID(w, r, "brandID")
	if !ok {
		return
	}
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	campaign := &domain.Campaign{BrandID: brandID, Name: req.Name, IsActive: true}
	if req.Active != nil {
		campaign.IsActive = *req.Active
	}
	if err := h.admin.CreateCampaign(r.Context(), campaign); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, campaign)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	brandID, ok := h.pathID(w, r, "brandID")
	if !ok {
		return
	}
	statuses, err := h.admin.ListCampaignStatuses(r.Context(), brandID, h.engine.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := make([]campaignStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		resp = append(resp, campaignStatusResponse{
			ID:             st.Campaign.ID,
			BrandID:        st.Campaign.BrandID,
			Name:           st.Campaign.Name,
			IsActive:       st.Campaign.IsActive,
			WithinSchedule: st.WithinSchedule,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleCreateSchedule stores a dayparting window. Duplicate windows for
// the campaign produce 409; out-of-range or midnight-crossing windows 400.
func (h *Handler) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.pathID(w, r, "campaignID")
	if !ok {
		return
	}
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	schedule := &domain.Schedule{
		CampaignID: campaignID,
		DayOfWeek:  req.DayOfWeek,
		StartHour:  req.StartHour,
		EndHour:    req.EndHour,
	}
	if err := h.admin.CreateSchedule(r.Context(), schedule); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, schedule)
}

func (h *Handler) handleActivateCampaign(w http.ResponseWriter, r *http.Request) {
	h.setCampaignActive(w, r, true)
}

func (h *Handler) handleDeactivateCampaign(w http.ResponseWriter, r *http.Request) {
	h.setCampaignActive(w, r, false)
}

func (h *Handler) setCampaignActive(w http.ResponseWriter, r *http.Request, active bool) {
	campaignID, ok := h.pathID(w, r, "campaignID")
	if !ok {
		return
	}
	if err := h.admin.SetCampaignActive(r.Context(), campaignID, active); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
