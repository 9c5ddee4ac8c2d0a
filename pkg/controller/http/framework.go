package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/usecase"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/errutil"
)

func (s *Server) listFrameworksHandler(w http.ResponseWriter, r *http.Request) {
	frameworks := s.uc.Framework.List()

	type frameworkInfo struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Version       string `json:"version"`
		TotalControls int    `json:"total_controls"`
	}

	infos := make([]frameworkInfo, len(frameworks))
	for i, fw := range frameworks {
		infos[i] = frameworkInfo{
			ID:            fw.ID.String(),
			Name:          fw.Name,
			Version:       fw.Version,
			TotalControls: fw.ControlCount(),
		}
	}

	respondJSON(r.Context(), w, http.StatusOK, map[string]any{
		"frameworks":       infos,
		"total_frameworks": len(infos),
	})
}

func (s *Server) getFrameworkHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := types.FrameworkID(chi.URLParam(r, "frameworkID"))

	fw, err := s.uc.Framework.Get(id)
	if err != nil {
		if errors.Is(err, usecase.ErrFrameworkNotFound) {
			errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
		} else {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		}
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"framework":            fw,
		"controls_by_category": fw.ControlsByCategory(),
	})
}
