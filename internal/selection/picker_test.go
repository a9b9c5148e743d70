package selection

import (
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/question"
)

func buildCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	var records []question.Record
	for i := 0; i < n; i++ {
		records = append(records, question.Record{
			ID:         fmt.Sprintf("q%d", i),
			Topic:      question.TopicChemistry,
			Difficulty: question.DifficultyHard,
			Kind:       question.KindMultipleChoice,
			Text:       fmt.Sprintf("Chemistry question number %d", i),
			Options:    [question.OptionCount]string{"a", "b", "c", "d"},
			Answer:     "a",
		})
	}
	// One off-pool record so filtering is exercised.
	records = append(records, question.Record{
		ID: "other", Topic: question.TopicMath, Difficulty: question.DifficultyHard,
		Kind: question.KindMultipleChoice, Text: "A math question here",
		Options: [question.OptionCount]string{"a", "b", "c", "d"}, Answer: "a",
	})
	c, err := catalog.New(records)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func TestPick_RespectsExclusions(t *testing.T) {
	c := buildCatalog(t, 3)
	p := NewSeeded(1)
	excluded := map[string]bool{"q0": true, "q2": true}
	for i := 0; i < 20; i++ {
		r, err := p.Pick(c, question.TopicChemistry, question.DifficultyHard, excluded)
		if err != nil {
			t.Fatalf("Pick: %v", err)
		}
		if r.ID != "q1" {
			t.Fatalf("Pick = %q, want q1", r.ID)
		}
	}
	if len(excluded) != 2 {
		t.Errorf("Pick mutated the exclusion set: %v", excluded)
	}
}

func TestPick_Exhausted(t *testing.T) {
	c := buildCatalog(t, 2)
	p := NewSeeded(1)
	_, err := p.Pick(c, question.TopicChemistry, question.DifficultyHard, map[string]bool{"q0": true, "q1": true})
	if !errors.Is(err, ErrExhaustedPool) {
		t.Errorf("Pick error = %v, want ErrExhaustedPool", err)
	}

	_, err = p.Pick(c, question.TopicPhysics, question.DifficultyEasy, nil)
	if !errors.Is(err, ErrExhaustedPool) {
		t.Errorf("Pick on empty pool error = %v, want ErrExhaustedPool", err)
	}
}

func TestPick_DrainsPoolWithoutRepeats(t *testing.T) {
	c := buildCatalog(t, 5)
	p := New()
	excluded := map[string]bool{}
	for i := 0; i < 5; i++ {
		r, err := p.Pick(c, question.TopicChemistry, question.DifficultyHard, excluded)
		if err != nil {
			t.Fatalf("pick %d: %v", i+1, err)
		}
		if excluded[r.ID] {
			t.Fatalf("pick %d repeated %q", i+1, r.ID)
		}
		excluded[r.ID] = true
	}
	if _, err := p.Pick(c, question.TopicChemistry, question.DifficultyHard, excluded); !errors.Is(err, ErrExhaustedPool) {
		t.Errorf("6th pick error = %v, want ErrExhaustedPool", err)
	}
}

// Chi-square goodness of fit with k=5 (4 degrees of freedom). The critical
// value at p=0.001 is 18.467, so a fair picker fails this roughly once in a
// thousand seeds; the fixed seed keeps it deterministic.
func TestPick_Uniform(t *testing.T) {
	const (
		k      = 5
		trials = 10000
	)
	c := buildCatalog(t, k)
	p := NewSeeded(42)

	counts := make(map[string]int, k)
	for i := 0; i < trials; i++ {
		r, err := p.Pick(c, question.TopicChemistry, question.DifficultyHard, nil)
		if err != nil {
			t.Fatalf("Pick: %v", err)
		}
		counts[r.ID]++
	}
	if len(counts) != k {
		t.Fatalf("saw %d distinct questions, want %d", len(counts), k)
	}

	expected := float64(trials) / k
	var chi2 float64
	for _, n := range counts {
		d := float64(n) - expected
		chi2 += d * d / expected
	}
	if chi2 > 18.467 {
		t.Errorf("chi-square = %.2f over %v, exceeds 18.467", chi2, counts)
	}
}

func TestCandidates_Order(t *testing.T) {
	c := buildCatalog(t, 4)
	got := Candidates(c, question.TopicChemistry, question.DifficultyHard, map[string]bool{"q1": true})
	if fmt.Sprint(got) != "[q0 q2 q3]" {
		t.Errorf("Candidates = %v, want [q0 q2 q3]", got)
	}
}
