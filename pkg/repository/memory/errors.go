package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
)

var (
	ErrNotFound      = model.ErrAssessmentNotFound
	ErrAlreadyExists = goerr.New("already exists")
)
