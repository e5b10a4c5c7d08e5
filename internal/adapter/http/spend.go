package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type spendRequest struct {
	CampaignID int64           `json:"campaign_id"`
	Amount     decimal.Decimal `json:"amount"`
	RecordedAt *time.Time      `json:"recorded_at,omitempty"`
}

type spendResponse struct {
	ID         int64           `json:"id"`
	CampaignID int64           `json:"campaign_id"`
	Amount     decimal.Decimal `json:"amount"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// handleRecordSpend is the spend-recording entry point. The body carries
// a campaign id, a positive amount and an optional timestamp defaulting
// to now. On success it returns the stored ledger entry with HTTP 201.
// Non-positive amounts produce 400 and unknown campaigns 404.
func (h *Handler) handleRecordSpend(w http.ResponseWriter, r *http.Request) {
	var req spendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	at := time.Time{}
	if req.RecordedAt != nil {
		at = *req.RecordedAt
	}
	rec, err := h.engine.RecordSpend(r.Context(), req.CampaignID, req.Amount, at)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(spendResponse{
		ID:         rec.ID,
		CampaignID: rec.CampaignID,
		Amount:     rec.Amount,
		RecordedAt: rec.RecordedAt,
	}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
