package rest

import (
	"time"

	"github.com/kelime/kelime-backend/internal/domain"
	"github.com/kelime/kelime-backend/internal/extract"
)

type wordResponse struct {
	ID              string  `json:"id"`
	Text            string  `json:"text"`
	Frequency       int64   `json:"frequency"`
	Definition      *string `json:"definition,omitempty"`
	PartOfSpeech    *string `json:"partOfSpeech,omitempty"`
	Phonetic        *string `json:"phonetic,omitempty"`
	AudioURL        *string `json:"audioUrl,omitempty"`
	ExampleSentence *string `json:"exampleSentence,omitempty"`
}

type knowledgeResponse struct {
	WordID            string     `json:"wordId"`
	State             string     `json:"state"`
	Priority          int        `json:"priority"`
	Stability         float64    `json:"stability"`
	Difficulty        float64    `json:"difficulty"`
	Lapses            int        `json:"lapses"`
	ReviewCount       int        `json:"reviewCount"`
	SuccessfulReviews int        `json:"successfulReviews"`
	Due               time.Time  `json:"due"`
	LastReview        *time.Time `json:"lastReview,omitempty"`
}

type analysisResponse struct {
	TotalWords       int     `json:"totalWords"`
	UniqueWords      int     `json:"uniqueWords"`
	KnownWords       int     `json:"knownWords"`
	NewWords         int     `json:"newWords"`
	Coverage         float64 `json:"coverage"`
	ProcessingStatus string  `json:"processingStatus"`
}

type sourceResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Type           string            `json:"type"`
	Processed      bool              `json:"processed"`
	Content        string            `json:"content,omitempty"`
	ContentPreview string            `json:"contentPreview,omitempty"`
	Analysis       *analysisResponse `json:"analysis,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func toWordResponse(w *domain.Word) wordResponse {
	return wordResponse{
		ID:              w.ID.String(),
		Text:            w.Text,
		Frequency:       w.Frequency,
		Definition:      w.Definition,
		PartOfSpeech:    w.PartOfSpeech,
		Phonetic:        w.Phonetic,
		AudioURL:        w.AudioURL,
		ExampleSentence: w.ExampleSentence,
	}
}

func toKnowledgeResponse(k *domain.UserWordKnowledge) knowledgeResponse {
	return knowledgeResponse{
		WordID:            k.WordID.String(),
		State:             k.State.String(),
		Priority:          k.Priority,
		Stability:         k.Stability,
		Difficulty:        k.Difficulty,
		Lapses:            k.Lapses,
		ReviewCount:       k.ReviewCount,
		SuccessfulReviews: k.SuccessfulReviews,
		Due:               k.Due,
		LastReview:        k.LastReview,
	}
}

func toSourceResponse(s *domain.Source, fullContent bool) sourceResponse {
	resp := sourceResponse{
		ID:        s.ID.String(),
		Title:     s.Title,
		Type:      s.Type.String(),
		Processed: s.Processed,
		CreatedAt: s.CreatedAt,
	}
	if fullContent {
		resp.Content = s.Content
	} else {
		resp.ContentPreview = extract.Preview(s.Content)
	}
	if s.Analysis != nil {
		resp.Analysis = &analysisResponse{
			TotalWords:       s.Analysis.TotalWords,
			UniqueWords:      s.Analysis.UniqueWords,
			KnownWords:       s.Analysis.KnownWords,
			NewWords:         s.Analysis.NewWords,
			Coverage:         s.Analysis.Coverage,
			ProcessingStatus: s.Analysis.ProcessingStatus,
		}
	}
	return resp
}
