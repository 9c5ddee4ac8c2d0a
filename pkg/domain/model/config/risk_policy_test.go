package config_test

import (
	"testing"

	"github.com/nexcomply-lab/nexcomply/pkg/domain/model/config"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

func TestRiskPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  config.RiskPolicy
		wantErr bool
	}{
		{
			name:    "defaults",
			policy:  *config.DefaultRiskPolicy(),
			wantErr: false,
		},
		{
			name:    "custom monotonic bands",
			policy:  config.RiskPolicy{LowMax: 3, MediumMax: 8, HighMax: 20, WeakControlThreshold: 40},
			wantErr: false,
		},
		{
			name:    "zero low threshold",
			policy:  config.RiskPolicy{LowMax: 0, MediumMax: 10, HighMax: 15, WeakControlThreshold: 50},
			wantErr: true,
		},
		{
			name:    "medium below low",
			policy:  config.RiskPolicy{LowMax: 10, MediumMax: 5, HighMax: 15, WeakControlThreshold: 50},
			wantErr: true,
		},
		{
			name:    "high equal to medium",
			policy:  config.RiskPolicy{LowMax: 5, MediumMax: 15, HighMax: 15, WeakControlThreshold: 50},
			wantErr: true,
		},
		{
			name:    "high above matrix maximum",
			policy:  config.RiskPolicy{LowMax: 5, MediumMax: 10, HighMax: 30, WeakControlThreshold: 50},
			wantErr: true,
		},
		{
			name:    "weak control threshold over 100",
			policy:  config.RiskPolicy{LowMax: 5, MediumMax: 10, HighMax: 15, WeakControlThreshold: 120},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("RiskPolicy.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRiskPolicy_Level(t *testing.T) {
	policy := config.DefaultRiskPolicy()

	tests := []struct {
		score float64
		want  types.RiskLevel
	}{
		{0, types.RiskLevelLow},
		{1, types.RiskLevelLow},
		{5, types.RiskLevelLow},
		{5.01, types.RiskLevelMedium},
		{10, types.RiskLevelMedium},
		{11, types.RiskLevelHigh},
		{15, types.RiskLevelHigh},
		{15.5, types.RiskLevelCritical},
		{25, types.RiskLevelCritical},
	}

	for _, tt := range tests {
		if got := policy.Level(tt.score); got != tt.want {
			t.Errorf("Level(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
