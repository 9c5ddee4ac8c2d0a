package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/service/report"
	"github.com/nexcomply-lab/nexcomply/pkg/usecase"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/errutil"
)

type generateReportRequest struct {
	AssessmentIDs []string `json:"assessment_ids"`
	Destination   string   `json:"destination"`
	Formats       []string `json:"formats"`
}

func (s *Server) generateReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "malformed request body"), http.StatusBadRequest)
		return
	}
	if req.Destination == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("destination is required"), http.StatusUnprocessableEntity)
		return
	}

	formats := make([]report.Format, 0, len(req.Formats))
	for _, f := range req.Formats {
		format, err := report.ParseFormat(f)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusUnprocessableEntity)
			return
		}
		formats = append(formats, format)
	}

	ids := make([]types.AssessmentID, len(req.AssessmentIDs))
	for i, id := range req.AssessmentIDs {
		ids[i] = types.AssessmentID(id)
	}

	locations, err := s.uc.Report.Generate(ctx, ids, req.Destination, formats)
	if err != nil {
		if errors.Is(err, usecase.ErrNoAssessments) {
			errutil.HandleHTTP(ctx, w, err, http.StatusUnprocessableEntity)
		} else {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		}
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"locations": locations,
	})
}
