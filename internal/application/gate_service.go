package application

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/docvet/docvet/internal/domain"
	"github.com/docvet/docvet/internal/domain/gate"
)

// GateService compares a fresh report against the stored baseline and
// optionally accepts the report as the new baseline.
type GateService struct {
	store domain.BaselineStore
}

func NewGateService(store domain.BaselineStore) *GateService {
	return &GateService{store: store}
}

// Evaluate loads the baseline at path and gates the report against it.
// The baseline file is read once here and written at most once, in Accept;
// concurrent gate runs against the same path are the caller's problem.
func (s *GateService) Evaluate(path string, report *domain.Report) (gate.Decision, error) {
	b, err := s.store.Load(path)
	if err != nil {
		return gate.Decision{}, fmt.Errorf("loading baseline: %w", err)
	}

	d := gate.Evaluate(b, report)
	log.Info().
		Str("baseline", path).
		Str("outcome", string(d.Outcome)).
		Int("regressions", len(d.Regressions)).
		Int("improvements", len(d.Improvements)).
		Msg("gate evaluated")
	return d, nil
}

// Accept fingerprints the report as the new baseline, carrying over any
// previously accepted violation waivers.
func (s *GateService) Accept(path string, report *domain.Report) error {
	var accepted []string
	if prev, err := s.store.Load(path); err == nil && prev != nil {
		accepted = prev.AcceptedViolationIDs
	}

	b := domain.NewBaseline(report, accepted)
	if err := s.store.Save(path, b); err != nil {
		return fmt.Errorf("saving baseline: %w", err)
	}

	log.Info().Str("baseline", path).Str("digest", b.Digest).Msg("baseline accepted")
	return nil
}
