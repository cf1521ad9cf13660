package textproc

import "math"

// stopWordPenalty suppresses but never eliminates stop words: they stay in
// the queue with a fractional score so heavy repetition can still surface them.
const stopWordPenalty = 0.1

// ContentScore returns the learning-value score for a word seen frequency
// times in a batch. With filtering enabled, stop words score at a tenth of
// their raw frequency; content words score at face value.
func ContentScore(word string, frequency int, filterStopWords bool) float64 {
	if filterStopWords && IsStopWord(word) {
		return float64(frequency) * stopWordPenalty
	}
	return float64(frequency)
}

// Priority converts a content score into the integer priority stored on the
// knowledge ledger. Low-scoring stop words round down to zero and sink to
// the bottom of the new-word queue.
func Priority(score float64) int {
	return int(math.Round(score))
}

// Stats summarizes a frequency batch by stop-word / content-word split.
// Used for ingestion logging only.
type Stats struct {
	TotalWords    int
	UniqueWords   int
	StopUnique    int
	StopTotal     int
	ContentUnique int
	ContentTotal  int
}

// BatchStats computes stop-word vs content-word statistics for a batch.
func BatchStats(counts map[string]int) Stats {
	st := Stats{UniqueWords: len(counts)}
	for word, freq := range counts {
		st.TotalWords += freq
		if IsStopWord(word) {
			st.StopUnique++
			st.StopTotal += freq
		} else {
			st.ContentUnique++
			st.ContentTotal += freq
		}
	}
	return st
}
