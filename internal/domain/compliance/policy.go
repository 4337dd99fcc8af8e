package compliance

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Policy is the operator-tunable compliance rule profile.
type Policy struct {
	Version      int                `toml:"version"`
	Rules        PolicyRules        `toml:"rules"`
	Scoring      PolicyScoring      `toml:"scoring"`
	Certificates PolicyCertificates `toml:"certificates"`
	Sequences    PolicySequences    `toml:"sequences"`
}

type PolicyRules struct {
	// Severities whose open violations force non_compliant.
	NonCompliantSeverities []string `toml:"noncompliant_severities"`
}

type PolicyScoring struct {
	Excellent float64 `toml:"excellent"`
	Good      float64 `toml:"good"`
	Fair      float64 `toml:"fair"`
}

type PolicyCertificates struct {
	ExpiringSoonDays int `toml:"expiring_soon_days"`
}

type PolicySequences struct {
	MaxRetries int `toml:"max_retries"`
}

func DefaultPolicy() Policy {
	return Policy{
		Version: 1,
		Rules: PolicyRules{
			NonCompliantSeverities: []string{string(SeverityCritical)},
		},
		Scoring:      PolicyScoring{Excellent: 90, Good: 75, Fair: 60},
		Certificates: PolicyCertificates{ExpiringSoonDays: 30},
		Sequences:    PolicySequences{MaxRetries: 5},
	}
}

// LoadPolicy reads a TOML policy profile. An empty path yields the default
// policy.
func LoadPolicy(path string) (Policy, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return DefaultPolicy(), nil
	}

	raw, err := os.ReadFile(trimmed)
	if err != nil {
		return Policy{}, err
	}

	policy := DefaultPolicy()
	if err := toml.Unmarshal(raw, &policy); err != nil {
		return Policy{}, err
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

func (p Policy) Validate() error {
	if p.Version != 1 {
		return fmt.Errorf("unsupported policy version %d: expected version = 1", p.Version)
	}
	if len(p.Rules.NonCompliantSeverities) == 0 {
		return errors.New("rules.noncompliant_severities must not be empty")
	}
	for _, raw := range p.Rules.NonCompliantSeverities {
		if _, err := ParseViolationSeverity(raw); err != nil {
			return err
		}
	}
	if p.Scoring.Excellent <= p.Scoring.Good || p.Scoring.Good <= p.Scoring.Fair {
		return errors.New("scoring thresholds must satisfy excellent > good > fair")
	}
	if p.Certificates.ExpiringSoonDays <= 0 {
		return errors.New("certificates.expiring_soon_days must be positive")
	}
	if p.Sequences.MaxRetries <= 0 {
		return errors.New("sequences.max_retries must be positive")
	}
	return nil
}

// ForcesNonCompliance reports whether an open violation of this severity
// makes the establishment non_compliant.
func (p Policy) ForcesNonCompliance(severity ViolationSeverity) bool {
	for _, raw := range p.Rules.NonCompliantSeverities {
		if ViolationSeverity(raw) == severity {
			return true
		}
	}
	return false
}

func (p Policy) Thresholds() RatingThresholds {
	return RatingThresholds{
		Excellent: p.Scoring.Excellent,
		Good:      p.Scoring.Good,
		Fair:      p.Scoring.Fair,
	}
}
