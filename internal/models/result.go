package models

import (
	"time"

	"wordtrainer/internal/session"
)

// Score buckets
const (
	BucketExcellent = "excellent"
	BucketGood      = "good"
	BucketFair      = "fair"
	BucketPoor      = "poor"
)

// TestResult is a finished practice session
type TestResult struct {
	ID              int64          `json:"id"`
	VocabularyID    int64          `json:"vocabulary_id"`
	Config          session.Config `json:"config"`
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at"`
	TotalWords      int            `json:"total_words"`
	CorrectFirstTry int            `json:"correct_first_try"`
	Score           int            `json:"score"`
	Bucket          string         `json:"bucket"`
	Words           []WordResult   `json:"words,omitempty"`
}

// WordResult records how a single word went during a practice session
type WordResult struct {
	WordID      string `json:"word_id"`
	Original    string `json:"original"`
	Translation string `json:"translation"`
	Attempts    int    `json:"attempts"`
	Correct     bool   `json:"correct"`
	Skipped     bool   `json:"skipped"`
}

// Missed lists the words that were not answered correctly first time.
func (r *TestResult) Missed() []WordResult {
	var missed []WordResult
	for _, w := range r.Words {
		if !w.Correct {
			missed = append(missed, w)
		}
	}
	return missed
}

// ScorePercent returns the rounded percentage of correct out of total.
func ScorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (correct*100 + total/2) / total
}

// ScoreBucket maps a percentage score to its bucket
func ScoreBucket(score int) string {
	switch {
	case score >= 90:
		return BucketExcellent
	case score >= 70:
		return BucketGood
	case score >= 50:
		return BucketFair
	default:
		return BucketPoor
	}
}

// ResultFilter narrows result history listings
type ResultFilter struct {
	VocabularyID int64
	Since        time.Time
	Bucket       string
	Limit        int
	Offset       int
}

// WordStats aggregates one word's results across practice sessions
type WordStats struct {
	WordID      string  `json:"word_id"`
	Original    string  `json:"original"`
	Translation string  `json:"translation"`
	Sessions    int     `json:"sessions"`
	Missed      int     `json:"missed"`
	Attempts    int     `json:"attempts"`
	MissRate    float64 `json:"miss_rate"`
}
