package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/internal/domain"
	"github.com/kelime/kelime-backend/internal/extract"
	"github.com/kelime/kelime-backend/internal/textproc"
)

// IngestInput is a request to ingest one source.
type IngestInput struct {
	Title   string
	Type    domain.SourceType
	Content string
}

func (in *IngestInput) validate(minChars, maxBytes int) error {
	var errs []domain.FieldError

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "is required"})
	}
	if !in.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source_type", Message: "unknown source type"})
	}
	if len(in.Content) > maxBytes {
		errs = append(errs, domain.FieldError{Field: "text", Message: fmt.Sprintf("exceeds %d bytes", maxBytes)})
	} else if len(strings.TrimSpace(in.Content)) < minChars {
		errs = append(errs, domain.FieldError{Field: "text", Message: fmt.Sprintf("must be at least %d characters", minChars)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// IngestSource runs the full pipeline for one batch of text: tokenize,
// upsert catalog words, merge per-user priorities, link provenance, and
// store the analysis snapshot. The returned source carries the analysis.
//
// Zero extractable words is not an error: the source is still recorded
// with processing status no_words_found.
func (s *Service) IngestSource(ctx context.Context, userID uuid.UUID, in IngestInput) (*domain.Source, error) {
	if err := in.validate(s.cfg.MinContentChars, s.cfg.MaxContentBytes); err != nil {
		return nil, err
	}
	now := s.now()

	content := in.Content
	if in.Type == domain.SourceTypeSRT {
		extracted, err := extract.SRT([]byte(in.Content))
		if err != nil {
			return nil, err
		}
		content = extracted
	}

	prof, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	eff := prof.Effective(now)

	counts := textproc.Frequencies(content)
	stats := textproc.BatchStats(counts)

	order := make([]string, 0, len(counts))
	for text := range counts {
		order = append(order, text)
	}
	sort.Strings(order)

	src := &domain.Source{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   in.Title,
		Type:    in.Type,
		Content: content,
	}
	analysis := domain.SourceAnalysis{
		TotalWords:  stats.TotalWords,
		UniqueWords: stats.UniqueWords,
	}

	var created []domain.WordUpsert
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.sources.Create(ctx, src); err != nil {
			return fmt.Errorf("create source: %w", err)
		}

		if stats.UniqueWords == 0 {
			analysis.ProcessingStatus = domain.ProcessingStatusNoWordsFound
			return s.sources.SetAnalysis(ctx, src.ID, analysis)
		}

		upserts, err := s.words.UpsertBatch(ctx, counts, order)
		if err != nil {
			return fmt.Errorf("upsert words: %w", err)
		}

		items := make([]domain.WordPriority, len(upserts))
		links := make([]domain.WordSourceLink, len(upserts))
		for i, u := range upserts {
			freq := counts[u.Text]
			score := textproc.ContentScore(u.Text, freq, eff.FilterStopWords)
			items[i] = domain.WordPriority{WordID: u.ID, Priority: textproc.Priority(score)}
			links[i] = domain.WordSourceLink{WordID: u.ID, SourceID: src.ID, Frequency: freq}
			if u.Inserted {
				created = append(created, u)
			}
		}

		merges, err := s.knowledge.UpsertMergePriority(ctx, userID, items)
		if err != nil {
			return fmt.Errorf("merge priorities: %w", err)
		}

		known := 0
		for _, m := range merges {
			if !m.Inserted && m.PrevState.IsCovered() {
				known++
			}
		}
		analysis.KnownWords = known
		analysis.NewWords = stats.UniqueWords - known
		analysis.Coverage = float64(known) / float64(stats.UniqueWords) * 100
		analysis.ProcessingStatus = domain.ProcessingStatusSuccess

		if err := s.sources.LinkWords(ctx, src.ID, links); err != nil {
			return fmt.Errorf("link words: %w", err)
		}
		return s.sources.SetAnalysis(ctx, src.ID, analysis)
	})
	if err != nil {
		return nil, err
	}

	src.Processed = true
	src.Analysis = &analysis

	s.log.Info("source ingested",
		"user_id", userID,
		"source_id", src.ID,
		"source_type", src.Type,
		"total_words", analysis.TotalWords,
		"unique_words", analysis.UniqueWords,
		"stop_unique", stats.StopUnique,
		"coverage", analysis.Coverage,
		"status", analysis.ProcessingStatus)

	s.enrichCreated(ctx, created)

	return src, nil
}
