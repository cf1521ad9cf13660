package ingest

import (
	"context"

	"github.com/kelime/kelime-backend/internal/domain"
)

// enrichCreated fetches dictionary data for words that entered the catalog
// in this batch. Best effort: lookups run after the ingestion transaction
// commits, and a failed lookup only logs.
func (s *Service) enrichCreated(ctx context.Context, created []domain.WordUpsert) {
	if !s.cfg.FetchDefinitions || s.enricher == nil || len(created) == 0 {
		return
	}

	enriched := 0
	for _, w := range created {
		if ctx.Err() != nil {
			return
		}

		e, err := s.enricher.Fetch(ctx, w.Text)
		if err != nil {
			s.log.Warn("dictionary lookup failed", "word", w.Text, "error", err)
			continue
		}
		if e == nil {
			continue
		}

		if err := s.words.UpdateEnrichment(ctx, w.ID, *e); err != nil {
			s.log.Warn("store enrichment failed", "word", w.Text, "error", err)
			continue
		}
		enriched++
	}

	s.log.Info("batch enrichment done", "created", len(created), "enriched", enriched)
}
