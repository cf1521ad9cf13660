package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}
	if err := c.Ingest.validate(); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	return nil
}

func (s *SRSConfig) validate() error {
	if s.MaxIntervalDays <= 0 {
		return fmt.Errorf("max_interval_days must be > 0 (got %d)", s.MaxIntervalDays)
	}
	if s.KnownStability <= 0 {
		return fmt.Errorf("known_stability must be > 0 (got %v)", s.KnownStability)
	}
	if s.FailureRetryDelay <= 0 {
		return fmt.Errorf("failure_retry_delay must be > 0 (got %v)", s.FailureRetryDelay)
	}
	if s.MarkKnownDueDays <= s.MaxIntervalDays {
		return fmt.Errorf("mark_known_due_days must exceed max_interval_days (got %d)", s.MarkKnownDueDays)
	}
	return nil
}

func (i *IngestConfig) validate() error {
	if i.MaxContentBytes <= 0 {
		return fmt.Errorf("max_content_bytes must be > 0 (got %d)", i.MaxContentBytes)
	}
	if i.MinContentChars <= 0 {
		return fmt.Errorf("min_content_chars must be > 0 (got %d)", i.MinContentChars)
	}
	if i.FetchDefinitions && i.DictionaryBaseURL == "" {
		return fmt.Errorf("dictionary_base_url required when fetch_definitions is enabled")
	}
	return nil
}
