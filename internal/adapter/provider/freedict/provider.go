// Package freedict fetches dictionary data from the FreeDictionary API
// to enrich catalog words with definitions and pronunciation.
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/kelime/kelime-backend/internal/domain"
)

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. baseURL is the API root
// (e.g. "https://api.dictionaryapi.dev/api/v2").
func NewProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "freedict"),
	}
}

// Fetch looks up a word and returns its enrichment data.
// Returns nil, nil if the word is not in the dictionary (HTTP 404).
func (p *Provider) Fetch(ctx context.Context, word string) (*domain.WordEnrichment, error) {
	reqURL := p.baseURL + "/entries/en/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w", err)
	}

	enrichment := mapAPIResponse(entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Bool("empty", enrichment == nil || enrichment.IsEmpty()),
	)

	return enrichment, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = p.httpClient.Do(req)
	return resp, err
}

// mapAPIResponse flattens the API entries into a single enrichment record:
// the first definition wins, the first phonetic with text sets the
// transcription, and the first phonetic with audio sets the audio URL.
func mapAPIResponse(entries []apiEntry) *domain.WordEnrichment {
	if len(entries) == 0 {
		return nil
	}

	var e domain.WordEnrichment

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				if e.Definition == nil && def.Definition != "" {
					d := def.Definition
					e.Definition = &d
					if meaning.PartOfSpeech != "" {
						pos := meaning.PartOfSpeech
						e.PartOfSpeech = &pos
					}
				}
				if e.ExampleSentence == nil && def.Example != "" {
					ex := def.Example
					e.ExampleSentence = &ex
				}
			}
		}

		for _, ph := range entry.Phonetics {
			if e.Phonetic == nil && ph.Text != "" {
				t := ph.Text
				e.Phonetic = &t
			}
			if e.AudioURL == nil && ph.Audio != "" {
				a := ph.Audio
				e.AudioURL = &a
			}
		}
	}

	if e.IsEmpty() {
		return nil
	}
	return &e
}
