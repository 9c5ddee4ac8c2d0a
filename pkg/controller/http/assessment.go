package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/usecase"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/errutil"
)

type riskFactorRequest struct {
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	Likelihood           int     `json:"likelihood"`
	Impact               int     `json:"impact"`
	CurrentControls      string  `json:"current_controls"`
	ControlEffectiveness float64 `json:"control_effectiveness"`
}

type assessRiskRequest struct {
	RiskID      string              `json:"risk_id"`
	Description string              `json:"description"`
	RiskFactors []riskFactorRequest `json:"risk_factors"`
}

func (s *Server) assessRiskHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req assessRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "malformed request body"), http.StatusBadRequest)
		return
	}

	factors := make([]model.RiskFactor, len(req.RiskFactors))
	for i, rf := range req.RiskFactors {
		factors[i] = model.NewRiskFactor(rf.Name, types.Category(rf.Category), rf.Likelihood, rf.Impact, rf.CurrentControls, rf.ControlEffectiveness)
	}

	assessment, err := s.uc.Assessment.Assess(ctx, usecase.AssessInput{
		RiskID:      types.RiskID(req.RiskID),
		Description: req.Description,
		Factors:     factors,
	})
	if err != nil {
		// Input-shape failures are the caller's mistake; everything else
		// is an internal failure.
		if isValidationError(err) {
			errutil.HandleHTTP(ctx, w, err, http.StatusUnprocessableEntity)
		} else {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		}
		return
	}

	respondJSON(ctx, w, http.StatusOK, assessment)
}

func isValidationError(err error) bool {
	return errors.Is(err, model.ErrEmptyFactors) ||
		errors.Is(err, model.ErrEmptyRiskID) ||
		errors.Is(err, model.ErrEmptyFactorName) ||
		errors.Is(err, types.ErrInvalidCategory)
}

func (s *Server) listAssessmentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var assessments []*model.RiskAssessment
	var err error
	if riskID := r.URL.Query().Get("risk_id"); riskID != "" {
		assessments, err = s.uc.Assessment.ListByRisk(ctx, types.RiskID(riskID))
	} else {
		assessments, err = s.uc.Assessment.List(ctx)
	}
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"assessments": assessments,
		"total":       len(assessments),
	})
}

func (s *Server) getAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.AssessmentID(chi.URLParam(r, "assessmentID"))

	assessment, err := s.uc.Assessment.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAssessmentNotFound) {
			errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
		} else {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		}
		return
	}

	respondJSON(ctx, w, http.StatusOK, assessment)
}

func (s *Server) deleteAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.AssessmentID(chi.URLParam(r, "assessmentID"))

	if err := s.uc.Assessment.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrAssessmentNotFound) {
			errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
		} else {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
