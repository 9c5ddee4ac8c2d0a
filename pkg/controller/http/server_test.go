package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/nexcomply-lab/nexcomply/pkg/controller/http"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/repository/memory"
	"github.com/nexcomply-lab/nexcomply/pkg/usecase"
)

func newTestServer(t *testing.T) (*httpctrl.Server, *usecase.UseCases) {
	t.Helper()

	registry := model.NewFrameworkRegistry()
	registry.Register(&model.Framework{
		ID:      types.FrameworkID("soc2"),
		Name:    "SOC 2 Type II",
		Version: "2017",
		Controls: []model.FrameworkControl{
			{ID: "CC6.1", Name: "Logical access controls", Category: "security"},
			{ID: "CC7.2", Name: "Anomaly monitoring", Category: "operations"},
		},
	})

	uc := usecase.New(memory.New(), usecase.WithFrameworkRegistry(registry))
	return httpctrl.New(uc, httpctrl.WithVersion("test")), uc
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	gt.Value(t, body["status"]).Equal("healthy")
	gt.Value(t, body["version"]).Equal("test")
}

func TestAssessRisk(t *testing.T) {
	srv, _ := newTestServer(t)

	reqBody := `{
		"risk_id": "risk-001",
		"description": "Unpatched internet-facing servers",
		"risk_factors": [
			{
				"name": "remote-exploit",
				"category": "technical",
				"likelihood": 4,
				"impact": 5,
				"current_controls": "monthly patching",
				"control_effectiveness": 50
			},
			{
				"name": "audit-gap",
				"category": "compliance",
				"likelihood": 2,
				"impact": 2,
				"control_effectiveness": 0
			}
		]
	}`

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess-risk", reqBody)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var got model.RiskAssessment
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	gt.Value(t, got.RiskID).Equal(types.RiskID("risk-001"))
	gt.Value(t, got.InherentRiskScore).Equal(20)
	gt.Value(t, got.ResidualRiskScore).Equal(10)
	gt.Value(t, got.RiskLevel).Equal(types.RiskLevelMedium)
	gt.Array(t, got.FactorScores).Length(2)
	gt.Value(t, got.FactorScores[0].Name).Equal("remote-exploit")
	gt.Value(t, got.FactorScores[0].InherentScore).Equal(20)
	gt.Value(t, got.FactorScores[0].ResidualScore).Equal(10)
	gt.Value(t, got.ID.String()).NotEqual("")
}

func TestAssessRiskMixedCaseCategory(t *testing.T) {
	srv, _ := newTestServer(t)

	reqBody := `{
		"risk_id": "risk-case",
		"risk_factors": [
			{"name": "legacy-system", "category": "Technical", "likelihood": 3, "impact": 4, "control_effectiveness": 20}
		]
	}`

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess-risk", reqBody)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var got model.RiskAssessment
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	gt.Array(t, got.Factors).Length(1)
	gt.Value(t, got.Factors[0].Category).Equal(types.CategoryTechnical)
}

func TestAssessRiskMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess-risk", `{"risk_id": `)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestAssessRiskValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{
			name: "empty factors",
			body: `{"risk_id": "risk-001", "risk_factors": []}`,
		},
		{
			name: "empty risk id",
			body: `{"risk_id": "", "risk_factors": [{"name": "x", "category": "technical", "likelihood": 3, "impact": 3}]}`,
		},
		{
			name: "unnamed factor",
			body: `{"risk_id": "risk-001", "risk_factors": [{"name": "", "category": "technical", "likelihood": 3, "impact": 3}]}`,
		},
		{
			name: "malformed category",
			body: `{"risk_id": "risk-001", "risk_factors": [{"name": "x", "category": "not a category!!", "likelihood": 3, "impact": 3}]}`,
		},
		{
			name: "empty category",
			body: `{"risk_id": "risk-001", "risk_factors": [{"name": "x", "category": "", "likelihood": 3, "impact": 3}]}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess-risk", tc.body)
			gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)
		})
	}
}

func TestAssessmentLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	reqBody := `{
		"risk_id": "risk-lifecycle",
		"risk_factors": [
			{"name": "outage", "category": "operational", "likelihood": 5, "impact": 5, "control_effectiveness": 0}
		]
	}`
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess-risk", reqBody)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var created model.RiskAssessment
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.ID.String()

	// Listed
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/assessments/", "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var listed struct {
		Assessments []model.RiskAssessment `json:"assessments"`
		Total       int                    `json:"total"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	gt.Value(t, listed.Total).Equal(1)
	gt.Array(t, listed.Assessments).Length(1)

	// Retrievable by ID
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/assessments/"+id, "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var fetched model.RiskAssessment
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	gt.Value(t, fetched.ID).Equal(created.ID)
	gt.Value(t, fetched.RiskLevel).Equal(types.RiskLevelCritical)

	// Deleted
	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/assessments/"+id, "")
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/assessments/"+id, "")
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestListAssessmentsByRisk(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, riskID := range []string{"risk-a", "risk-a", "risk-b"} {
		body, err := json.Marshal(map[string]any{
			"risk_id": riskID,
			"risk_factors": []map[string]any{
				{"name": "factor", "category": "technical", "likelihood": 2, "impact": 3},
			},
		})
		gt.NoError(t, err)
		rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess-risk", string(body))
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/assessments/?risk_id=risk-a", "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var listed struct {
		Assessments []model.RiskAssessment `json:"assessments"`
		Total       int                    `json:"total"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	gt.Value(t, listed.Total).Equal(2)
	for _, a := range listed.Assessments {
		gt.Value(t, a.RiskID).Equal(types.RiskID("risk-a"))
	}
}

func TestGetAssessmentNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/assessments/no-such-id", "")
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/assessments/no-such-id", "")
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestFrameworks(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/frameworks/", "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var listed struct {
		Frameworks []struct {
			ID            string `json:"id"`
			Name          string `json:"name"`
			TotalControls int    `json:"total_controls"`
		} `json:"frameworks"`
		TotalFrameworks int `json:"total_frameworks"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	gt.Value(t, listed.TotalFrameworks).Equal(1)
	gt.Value(t, listed.Frameworks[0].ID).Equal("soc2")
	gt.Value(t, listed.Frameworks[0].TotalControls).Equal(2)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/frameworks/soc2", "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var detail struct {
		Framework          model.Framework                     `json:"framework"`
		ControlsByCategory map[string][]model.FrameworkControl `json:"controls_by_category"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	gt.Value(t, detail.Framework.Name).Equal("SOC 2 Type II")
	gt.Array(t, detail.Framework.Controls).Length(2)
	gt.Array(t, detail.ControlsByCategory["security"]).Length(1)
	gt.Value(t, detail.ControlsByCategory["security"][0].ID).Equal("CC6.1")
	gt.Array(t, detail.ControlsByCategory["operations"]).Length(1)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/frameworks/iso27001", "")
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestGenerateReport(t *testing.T) {
	srv, _ := newTestServer(t)

	reqBody := `{
		"risk_id": "risk-report",
		"risk_factors": [
			{"name": "breach", "category": "technical", "likelihood": 3, "impact": 4, "control_effectiveness": 25}
		]
	}`
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess-risk", reqBody)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	dir := t.TempDir()
	body, err := json.Marshal(map[string]any{
		"destination": dir,
		"formats":     []string{"csv", "json"},
	})
	gt.NoError(t, err)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/reports", string(body))
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Locations []string `json:"locations"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.Array(t, resp.Locations).Length(2)
	gt.Bool(t, strings.HasSuffix(resp.Locations[0], ".csv")).True()
	gt.Bool(t, strings.HasSuffix(resp.Locations[1], ".json")).True()
}

func TestGenerateReportNoAssessments(t *testing.T) {
	srv, _ := newTestServer(t)

	body, err := json.Marshal(map[string]any{"destination": t.TempDir()})
	gt.NoError(t, err)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/reports", string(body))
	gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)
}

func TestGenerateReportBadFormat(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/reports", `{"destination": "/tmp/x", "formats": ["xml"]}`)
	gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)
}
