package summary

import (
	"fmt"

	"github.com/abhisek/quizzy/internal/question"
)

// weakTopicThreshold is the per-topic accuracy below which a topic is
// flagged for review.
const weakTopicThreshold = 60.0

// Recommend returns study suggestions for s.
func Recommend(s *Score) []string {
	if s.Total == 0 {
		return []string{"Answer a few questions to get feedback on your performance."}
	}

	var recs []string
	switch {
	case s.Accuracy >= 90:
		recs = append(recs, "Excellent performance! Consider trying a harder difficulty.")
	case s.Accuracy >= 70:
		recs = append(recs, "Good performance! Review incorrect answers and practice similar questions.")
	case s.Accuracy >= 50:
		recs = append(recs, "Fair performance. Focus on understanding the fundamental concepts.")
	default:
		recs = append(recs, "Keep practicing! Consider reviewing study material for this topic.")
	}

	switch {
	case s.QuestionsPerMinute == 0:
	case s.QuestionsPerMinute < 1:
		recs = append(recs, "Try to answer more quickly as you practice.")
	case s.QuestionsPerMinute > 5:
		recs = append(recs, "Great speed! Make sure you are not rushing through questions.")
	}

	for _, t := range question.AllTopics() {
		tl, ok := s.ByTopic[t]
		if ok && tl.Total > 0 && tl.Accuracy < weakTopicThreshold {
			recs = append(recs, fmt.Sprintf("Consider reviewing %s concepts.", t))
		}
	}
	return recs
}
