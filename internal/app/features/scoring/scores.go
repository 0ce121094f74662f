// internal/app/features/scoring/scores.go
package scoring

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/features/shared"
	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/envelope"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

// ServeScores lists the signed-in user's score documents, newest first.
func (h *Handler) ServeScores(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	docs, err := h.scores().ListByUser(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	if docs == nil {
		docs = []models.ScoreDocument{}
	}
	envelope.WriteOK(w, docs)
}

// ServeQuarter returns one quarter's score document.
func (h *Handler) ServeQuarter(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		envelope.WriteError(w, apperr.New(apperr.Validation, "malformed year"))
		return
	}
	quarter, err := strconv.Atoi(chi.URLParam(r, "quarter"))
	if err != nil || quarter < 1 || quarter > 4 {
		envelope.WriteError(w, apperr.New(apperr.Validation, "quarter must be 1..4"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.scores().GetByQuarter(ctx, userID, year, quarter)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	if doc == nil {
		envelope.WriteError(w, apperr.New(apperr.NotFound, "no score recorded for that quarter"))
		return
	}
	envelope.WriteOK(w, doc)
}

type scoreRequest struct {
	Year    int            `json:"year"`
	Quarter int            `json:"quarter"`
	Values  map[string]int `json:"values"`
}

// HandleUpsertScore writes a quarterly score and mirrors the recomputed
// total onto the user document.
func (h *Handler) HandleUpsertScore(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	var req scoreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	if req.Year < 2000 || req.Year > 2200 {
		envelope.WriteError(w, apperr.New(apperr.Validation, "malformed year"))
		return
	}
	if req.Quarter < 1 || req.Quarter > 4 {
		envelope.WriteError(w, apperr.New(apperr.Validation, "quarter must be 1..4"))
		return
	}
	for category, v := range req.Values {
		if v < 0 || v > 10 {
			envelope.WriteError(w, apperr.Newf(apperr.Validation, "score for %q must be 0..10", category))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.scores().Upsert(ctx, models.ScoreDocument{
		UserID:  userID,
		Year:    req.Year,
		Quarter: req.Quarter,
		Values:  req.Values,
	})
	if err != nil {
		h.Log.Warn("score upsert failed", zap.String("user_id", userID.Hex()), zap.Error(err))
		envelope.WriteError(w, err)
		return
	}
	if err := h.users().SetScore(ctx, userID, doc.Total); err != nil {
		h.Log.Warn("score mirror failed", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	envelope.WriteOK(w, doc)
}
