package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/nexcomply-lab/nexcomply/pkg/domain/interfaces"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/repository/firestore"
	"github.com/nexcomply-lab/nexcomply/pkg/repository/memory"
)

func newAssessment(riskID string) *model.RiskAssessment {
	factor := model.NewRiskFactor("SQL injection", types.CategoryTechnical, 4, 5, "parameterized queries", 60)
	return &model.RiskAssessment{
		ID:          types.NewAssessmentID(),
		RiskID:      types.RiskID(riskID),
		Description: "database exposure",
		Factors:     []model.RiskFactor{factor},
		FactorScores: []model.FactorScore{
			{Name: factor.Name, InherentScore: 20, ResidualScore: 8},
		},
		InherentRiskScore: 20,
		ResidualRiskScore: 8,
		RiskLevel:         types.RiskLevelMedium,
		Recommendations:   []string{"SQL injection: improve control effectiveness"},
		CreatedAt:         time.Now().UTC(),
	}
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round-trips the snapshot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		assessment := newAssessment("RISK-001")
		if err := repo.Assessment().Create(ctx, assessment); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}

		retrieved, err := repo.Assessment().Get(ctx, assessment.ID)
		if err != nil {
			t.Fatalf("failed to get assessment: %v", err)
		}

		if retrieved.ID != assessment.ID {
			t.Errorf("expected ID=%s, got %s", assessment.ID, retrieved.ID)
		}
		if retrieved.RiskID != assessment.RiskID {
			t.Errorf("expected riskID=%s, got %s", assessment.RiskID, retrieved.RiskID)
		}
		if retrieved.InherentRiskScore != assessment.InherentRiskScore {
			t.Errorf("expected inherent=%v, got %v", assessment.InherentRiskScore, retrieved.InherentRiskScore)
		}
		if retrieved.ResidualRiskScore != assessment.ResidualRiskScore {
			t.Errorf("expected residual=%v, got %v", assessment.ResidualRiskScore, retrieved.ResidualRiskScore)
		}
		if retrieved.RiskLevel != assessment.RiskLevel {
			t.Errorf("expected level=%s, got %s", assessment.RiskLevel, retrieved.RiskLevel)
		}
		if len(retrieved.Factors) != 1 || retrieved.Factors[0].Name != "SQL injection" {
			t.Errorf("factors not preserved: %+v", retrieved.Factors)
		}
		if len(retrieved.FactorScores) != 1 {
			t.Errorf("factor scores not preserved: %+v", retrieved.FactorScores)
		}
		if len(retrieved.Recommendations) != 1 {
			t.Errorf("recommendations not preserved: %+v", retrieved.Recommendations)
		}
	})

	t.Run("Create rejects duplicate IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		assessment := newAssessment("RISK-DUP")
		if err := repo.Assessment().Create(ctx, assessment); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}
		if err := repo.Assessment().Create(ctx, assessment); err == nil {
			t.Error("expected error on duplicate create")
		}
	})

	t.Run("Get returns not found for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Assessment().Get(ctx, types.NewAssessmentID())
		if err == nil {
			t.Error("expected error for unknown assessment")
		}
	})

	t.Run("List returns assessments newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := newAssessment("RISK-OLD")
		first.CreatedAt = time.Now().UTC().Add(-time.Hour)
		second := newAssessment("RISK-NEW")

		if err := repo.Assessment().Create(ctx, first); err != nil {
			t.Fatalf("failed to create first: %v", err)
		}
		if err := repo.Assessment().Create(ctx, second); err != nil {
			t.Fatalf("failed to create second: %v", err)
		}

		listed, err := repo.Assessment().List(ctx)
		if err != nil {
			t.Fatalf("failed to list assessments: %v", err)
		}
		if len(listed) != 2 {
			t.Fatalf("expected 2 assessments, got %d", len(listed))
		}
		if listed[0].RiskID != "RISK-NEW" || listed[1].RiskID != "RISK-OLD" {
			t.Errorf("unexpected order: %s, %s", listed[0].RiskID, listed[1].RiskID)
		}
	})

	t.Run("ListByRisk filters to one risk, newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		older := newAssessment("RISK-FILTER")
		older.CreatedAt = time.Now().UTC().Add(-time.Hour)
		newer := newAssessment("RISK-FILTER")
		other := newAssessment("RISK-OTHER")

		for _, a := range []*model.RiskAssessment{older, newer, other} {
			if err := repo.Assessment().Create(ctx, a); err != nil {
				t.Fatalf("failed to create assessment: %v", err)
			}
		}

		listed, err := repo.Assessment().ListByRisk(ctx, types.RiskID("RISK-FILTER"))
		if err != nil {
			t.Fatalf("failed to list by risk: %v", err)
		}
		if len(listed) != 2 {
			t.Fatalf("expected 2 assessments, got %d", len(listed))
		}
		if listed[0].ID != newer.ID || listed[1].ID != older.ID {
			t.Errorf("unexpected order: %s, %s", listed[0].ID, listed[1].ID)
		}

		empty, err := repo.Assessment().ListByRisk(ctx, types.RiskID("RISK-ABSENT"))
		if err != nil {
			t.Fatalf("failed to list absent risk: %v", err)
		}
		if len(empty) != 0 {
			t.Errorf("expected no assessments, got %d", len(empty))
		}
	})

	t.Run("Delete removes the assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		assessment := newAssessment("RISK-DEL")
		if err := repo.Assessment().Create(ctx, assessment); err != nil {
			t.Fatalf("failed to create assessment: %v", err)
		}
		if err := repo.Assessment().Delete(ctx, assessment.ID); err != nil {
			t.Fatalf("failed to delete assessment: %v", err)
		}
		if _, err := repo.Assessment().Get(ctx, assessment.ID); err == nil {
			t.Error("expected error after delete")
		}
		if err := repo.Assessment().Delete(ctx, assessment.ID); err == nil {
			t.Error("expected error on deleting twice")
		}
	})
}

func TestMemoryAssessmentRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestMemoryNotFoundSentinel(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	_, err := repo.Assessment().Get(ctx, types.NewAssessmentID())
	if !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCopyOnRead(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	assessment := newAssessment("RISK-COPY")
	if err := repo.Assessment().Create(ctx, assessment); err != nil {
		t.Fatalf("failed to create assessment: %v", err)
	}

	retrieved, err := repo.Assessment().Get(ctx, assessment.ID)
	if err != nil {
		t.Fatalf("failed to get assessment: %v", err)
	}
	retrieved.Recommendations[0] = "tampered"
	retrieved.Factors[0].Name = "tampered"

	again, err := repo.Assessment().Get(ctx, assessment.ID)
	if err != nil {
		t.Fatalf("failed to get assessment again: %v", err)
	}
	if again.Recommendations[0] == "tampered" || again.Factors[0].Name == "tampered" {
		t.Error("stored snapshot must not be affected by mutation of a returned copy")
	}
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func TestFirestoreAssessmentRepository(t *testing.T) {
	runRepositoryTest(t, newFirestoreRepository)
}
