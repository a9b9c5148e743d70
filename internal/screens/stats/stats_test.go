package stats

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/router"
)

func testStats() catalog.Stats {
	return catalog.Stats{
		Total: 7,
		Counts: map[question.Topic]map[question.Difficulty]int{
			question.TopicPhysics:   {question.DifficultyEasy: 3, question.DifficultyMedium: 1},
			question.TopicChemistry: {question.DifficultyHard: 3},
		},
		TopicTotals: map[question.Topic]int{question.TopicPhysics: 4, question.TopicChemistry: 3},
		LevelTotals: map[question.Difficulty]int{
			question.DifficultyEasy:   3,
			question.DifficultyMedium: 1,
			question.DifficultyHard:   3,
		},
	}
}

func TestMatrix(t *testing.T) {
	m := Matrix(testStats())
	for _, want := range []string{"Topic", "Easy", "Medium", "Hard", "Physics", "Chemistry", "Math", "Total", "7"} {
		if !strings.Contains(m, want) {
			t.Errorf("matrix missing %q", want)
		}
	}
	if lines := strings.Count(m, "\n"); lines != 5 {
		t.Errorf("expected 6 lines, got %d", lines+1)
	}
}

func TestStatsScreen_EnterPops(t *testing.T) {
	s := New(testStats())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
