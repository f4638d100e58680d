package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

type errorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

type affordabilityErrorResponse struct {
	Error         string               `json:"error"`
	TotalCost     float64              `json:"totalCost"`
	HoldingCost   float64              `json:"holdingCost"`
	AvailableCash float64              `json:"availableCash"`
	Shortfall     float64              `json:"shortfall"`
	DominantCost  string               `json:"dominantCost,omitempty"`
	CostBreakdown shared.CostBreakdown `json:"costBreakdown"`
}

type conflictErrorResponse struct {
	Error        string `json:"error"`
	PersistedDay int    `json:"persistedDay"`
	RequestedDay int    `json:"requestedDay"`
}

// writeError maps the domain error taxonomy onto HTTP status codes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		affordabilityErr *shared.AffordabilityError
		validationErr    *shared.ValidationError
		conflictErr      *shared.ConflictError
		notFoundErr      *shared.NotFoundError
		processingErr    *shared.ProcessingError
	)

	switch {
	case errors.As(err, &affordabilityErr):
		writeJSON(w, http.StatusBadRequest, affordabilityErrorResponse{
			Error:         affordabilityErr.Error(),
			TotalCost:     affordabilityErr.TotalCost,
			HoldingCost:   affordabilityErr.HoldingCost,
			AvailableCash: affordabilityErr.AvailableCash,
			Shortfall:     affordabilityErr.Shortfall,
			DominantCost:  affordabilityErr.Breakdown.Dominant(),
			CostBreakdown: affordabilityErr.Breakdown,
		})

	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Field: validationErr.Field})

	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, conflictErrorResponse{
			Error:        conflictErr.Error(),
			PersistedDay: conflictErr.PersistedDay,
			RequestedDay: conflictErr.RequestedDay,
		})

	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})

	case errors.As(err, &processingErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: processingErr.Error(), Details: processingErr.Details})

	default:
		common.LoggerFromContext(r.Context()).Log("ERROR", "Request failed", map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to process request", Details: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
