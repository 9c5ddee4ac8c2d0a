package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrNotFound = model.ErrAssessmentNotFound

type assessmentDocument struct {
	ID                string              `firestore:"id"`
	RiskID            string              `firestore:"risk_id"`
	Description       string              `firestore:"description"`
	Factors           []model.RiskFactor  `firestore:"factors"`
	FactorScores      []model.FactorScore `firestore:"factor_scores"`
	InherentRiskScore float64             `firestore:"inherent_risk_score"`
	ResidualRiskScore float64             `firestore:"residual_risk_score"`
	RiskLevel         string              `firestore:"risk_level"`
	Recommendations   []string            `firestore:"recommendations"`
	CreatedAt         time.Time           `firestore:"created_at"`
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client: client,
	}
}

func (r *assessmentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessments"
	}
	return "assessments"
}

func toDocument(a *model.RiskAssessment) *assessmentDocument {
	return &assessmentDocument{
		ID:                a.ID.String(),
		RiskID:            a.RiskID.String(),
		Description:       a.Description,
		Factors:           a.Factors,
		FactorScores:      a.FactorScores,
		InherentRiskScore: a.InherentRiskScore,
		ResidualRiskScore: a.ResidualRiskScore,
		RiskLevel:         a.RiskLevel.String(),
		Recommendations:   a.Recommendations,
		CreatedAt:         a.CreatedAt,
	}
}

func (d *assessmentDocument) toModel() *model.RiskAssessment {
	return &model.RiskAssessment{
		ID:                types.AssessmentID(d.ID),
		RiskID:            types.RiskID(d.RiskID),
		Description:       d.Description,
		Factors:           d.Factors,
		FactorScores:      d.FactorScores,
		InherentRiskScore: d.InherentRiskScore,
		ResidualRiskScore: d.ResidualRiskScore,
		RiskLevel:         types.RiskLevel(d.RiskLevel),
		Recommendations:   d.Recommendations,
		CreatedAt:         d.CreatedAt,
	}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.RiskAssessment) error {
	if err := assessment.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store assessment")
	}

	docRef := r.client.Collection(r.collection()).Doc(assessment.ID.String())
	if _, err := docRef.Create(ctx, toDocument(assessment)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(err, "assessment already stored", goerr.V("id", assessment.ID))
		}
		return goerr.Wrap(err, "failed to create assessment document", goerr.V("id", assessment.ID))
	}

	return nil
}

func (r *assessmentRepository) Get(ctx context.Context, id types.AssessmentID) (*model.RiskAssessment, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment document", goerr.V("id", id))
	}

	var d assessmentDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assessment document", goerr.V("id", id))
	}

	return d.toModel(), nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.RiskAssessment, error) {
	iter := r.client.Collection(r.collection()).OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var assessments []*model.RiskAssessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var d assessmentDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode assessment document", goerr.V("doc", doc.Ref.ID))
		}
		assessments = append(assessments, d.toModel())
	}

	return assessments, nil
}

// ListByRisk requires the composite index on risk_id and created_at, see the
// migrate command.
func (r *assessmentRepository) ListByRisk(ctx context.Context, riskID types.RiskID) ([]*model.RiskAssessment, error) {
	iter := r.client.Collection(r.collection()).
		Where("risk_id", "==", riskID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var assessments []*model.RiskAssessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments", goerr.V("risk_id", riskID))
		}

		var d assessmentDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode assessment document", goerr.V("doc", doc.Ref.ID))
		}
		assessments = append(assessments, d.toModel())
	}

	return assessments, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id types.AssessmentID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	// Existence check first so callers get a deterministic NotFound
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get assessment document", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment document", goerr.V("id", id))
	}

	return nil
}
