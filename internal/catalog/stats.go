package catalog

import "github.com/abhisek/quizzy/internal/question"

// Stats is a topic by difficulty count matrix over the catalog.
type Stats struct {
	Total       int                                            `json:"total"`
	Counts      map[question.Topic]map[question.Difficulty]int `json:"counts"`
	TopicTotals map[question.Topic]int                         `json:"topic_totals"`
	LevelTotals map[question.Difficulty]int                    `json:"difficulty_totals"`
}

// Stats computes question counts for every topic and difficulty, including
// zero cells, so callers can render a full matrix.
func (c *Catalog) Stats() Stats {
	s := Stats{
		Total:       len(c.records),
		Counts:      make(map[question.Topic]map[question.Difficulty]int),
		TopicTotals: make(map[question.Topic]int),
		LevelTotals: make(map[question.Difficulty]int),
	}
	for _, t := range question.AllTopics() {
		row := make(map[question.Difficulty]int)
		for _, d := range question.AllDifficulties() {
			n := len(c.byPair[key{t, d}])
			row[d] = n
			s.TopicTotals[t] += n
			s.LevelTotals[d] += n
		}
		s.Counts[t] = row
	}
	return s
}
