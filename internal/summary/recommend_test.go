package summary

import (
	"strings"
	"testing"

	"github.com/abhisek/quizzy/internal/question"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name  string
		score *Score
		want  []string
	}{
		{
			name:  "nothing answered",
			score: &Score{},
			want:  []string{"Answer a few questions"},
		},
		{
			name: "strong and fast",
			score: &Score{
				Total: 10, Accuracy: 95, QuestionsPerMinute: 6,
				ByTopic: map[question.Topic]Tally{question.TopicPhysics: {Total: 10, Correct: 9, Accuracy: 90}},
			},
			want: []string{"Excellent", "Great speed"},
		},
		{
			name: "weak and slow",
			score: &Score{
				Total: 4, Accuracy: 25, QuestionsPerMinute: 0.5,
				ByTopic: map[question.Topic]Tally{question.TopicChemistry: {Total: 4, Correct: 1, Accuracy: 25}},
			},
			want: []string{"Keep practicing", "more quickly", "reviewing Chemistry"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.score)
			if len(got) != len(tt.want) {
				t.Fatalf("Recommend() = %q, want %d entries", got, len(tt.want))
			}
			for i, w := range tt.want {
				if !strings.Contains(got[i], w) {
					t.Errorf("recommendation %d = %q, want substring %q", i, got[i], w)
				}
			}
		})
	}
}
