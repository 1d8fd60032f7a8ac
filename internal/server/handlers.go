package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/equity-insight/internal/research"
	"github.com/jonathan/equity-insight/internal/types"
)

var validate = validator.New()

// reportRequest is the body of POST /api/reports
type reportRequest struct {
	Company string `json:"company" validate:"required,min=1,max=200"`
}

// handleCreateReport runs the report pipeline for the requested company.
// Concurrent requests for the same company are collapsed into a single
// generation call; nothing is retained once the call settles, so this is not
// a cache.
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "Request body must be JSON with a \"company\" field.")
		return
	}

	req.Company = strings.TrimSpace(req.Company)
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid_request", "A non-empty company name is required.")
		return
	}

	report, err, shared := s.group.Do(req.Company, func() (any, error) {
		return s.fetcher.FetchReport(r.Context(), req.Company)
	})
	if err != nil {
		s.log.Error().Err(err).Str("company", req.Company).Msg("report generation failed")
		s.errorResponse(w, HTTPStatus(err), errorKind(err), research.UserMessage(err))
		return
	}

	if shared {
		s.log.Debug().Str("company", req.Company).Msg("joined in-flight generation")
	}

	s.jsonResponse(w, http.StatusOK, report.(*types.Report))
}
