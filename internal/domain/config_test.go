package domain_test

import (
	"testing"
	"time"

	"github.com/docvet/docvet/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, []string{"*.md", "*.markdown"}, cfg.Patterns)
	assert.Equal(t, domain.DefaultTimeoutMS, cfg.TimeoutMS)
	assert.False(t, cfg.IncludeUntagged)
	assert.False(t, cfg.ExcludeMalformedFromRate)
	assert.NoError(t, cfg.Validate())
}

func TestProjectConfig_Timeout(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, domain.ProjectConfig{TimeoutMS: 250}.Timeout())
	assert.Equal(t, 30*time.Second, domain.ProjectConfig{}.Timeout(), "zero falls back to the default")
}

func TestProjectConfig_Validate(t *testing.T) {
	minVal := 0.0

	tests := []struct {
		name    string
		cfg     domain.ProjectConfig
		wantErr string
	}{
		{
			name:    "negative timeout",
			cfg:     domain.ProjectConfig{TimeoutMS: -1},
			wantErr: "timeout_ms",
		},
		{
			name:    "negative workers",
			cfg:     domain.ProjectConfig{Workers: -2},
			wantErr: "workers",
		},
		{
			name: "domain rule without name",
			cfg: domain.ProjectConfig{Rules: domain.RulesConfig{
				Domain: []domain.DomainCheckConfig{{Match: "x", Min: &minVal}},
			}},
			wantErr: "need a name",
		},
		{
			name: "domain rule without match",
			cfg: domain.ProjectConfig{Rules: domain.RulesConfig{
				Domain: []domain.DomainCheckConfig{{Name: "r", Min: &minVal}},
			}},
			wantErr: "match pattern",
		},
		{
			name: "domain rule with broken regexp",
			cfg: domain.ProjectConfig{Rules: domain.RulesConfig{
				Domain: []domain.DomainCheckConfig{{Name: "r", Match: "([", Min: &minVal}},
			}},
			wantErr: "invalid match pattern",
		},
		{
			name: "domain rule with unknown severity",
			cfg: domain.ProjectConfig{Rules: domain.RulesConfig{
				Domain: []domain.DomainCheckConfig{{Name: "r", Match: "x", Min: &minVal, Severity: "fatal"}},
			}},
			wantErr: "unknown severity",
		},
		{
			name: "domain rule without any constraint",
			cfg: domain.ProjectConfig{Rules: domain.RulesConfig{
				Domain: []domain.DomainCheckConfig{{Name: "r", Match: "x"}},
			}},
			wantErr: "declares no constraint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProjectConfig_ValidateAcceptsFiniteOnly(t *testing.T) {
	cfg := domain.ProjectConfig{Rules: domain.RulesConfig{
		Domain: []domain.DomainCheckConfig{{Name: "r", Match: "x", Finite: true}},
	}}
	assert.NoError(t, cfg.Validate())
}
