package practice

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/grading"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/selection"
	"github.com/abhisek/quizzy/internal/session"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	var records []question.Record
	for i := 1; i <= 5; i++ {
		records = append(records, question.Record{
			ID:          fmt.Sprintf("physics_%d", i),
			Topic:       question.TopicPhysics,
			Difficulty:  question.DifficultyMedium,
			Kind:        question.KindMultipleChoice,
			Text:        fmt.Sprintf("Physics medium question %d", i),
			Options:     [question.OptionCount]string{"alpha", "beta", "gamma", "delta"},
			Answer:      "beta",
			Explanation: "Beta is correct.",
		})
	}
	records = append(records, question.Record{
		ID:         "chem_1",
		Topic:      question.TopicChemistry,
		Difficulty: question.DifficultyEasy,
		Kind:       question.KindMultipleChoice,
		Text:       "Which gas do plants absorb?",
		Options:    [question.OptionCount]string{"CO2", "O2", "N2", "H2"},
		Answer:     "CO2",
	})
	c, err := catalog.New(records)
	require.NoError(t, err)
	return c
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newService(t *testing.T, limits Limits) (*Service, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)}
	n := 0
	svc, err := NewService(Options{
		Catalog: testCatalog(t),
		Picker:  selection.NewSeeded(11),
		Limits:  limits,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:     clk.now,
		NewID: func() string {
			n++
			return fmt.Sprintf("sess-%d", n)
		},
	})
	require.NoError(t, err)
	return svc, clk
}

func TestCreateSession_Validation(t *testing.T) {
	svc, _ := newService(t, DefaultLimits())

	tests := []struct {
		name       string
		topic      string
		difficulty string
		target     int
		field      string
	}{
		{"unknown topic", "Biology", "Easy", 10, "topic"},
		{"unknown difficulty", "Physics", "Brutal", 10, "difficulty"},
		{"too few", "Physics", "Medium", 4, "total_questions"},
		{"too many", "Physics", "Medium", 51, "total_questions"},
		{"empty pool", "Math", "Hard", 5, "difficulty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSession(tt.topic, tt.difficulty, tt.target)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Equal(t, 0, svc.Len())
}

func TestCreateSession_DefaultTarget(t *testing.T) {
	svc, _ := newService(t, DefaultLimits())
	info, err := svc.CreateSession("physics", "medium", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, info.Target)
	assert.Equal(t, question.TopicPhysics, info.Topic)
	assert.Equal(t, "active", info.State)
	assert.True(t, info.Active())
	assert.Nil(t, info.CompletedAt)
}

func TestEndToEnd(t *testing.T) {
	svc, clk := newService(t, Limits{Default: 10, Min: 1, Max: 50})

	info, err := svc.CreateSession("Physics", "Medium", 3)
	require.NoError(t, err)

	answers := []string{"beta", "beta", "gamma"}
	for i, a := range answers {
		v, err := svc.NextQuestion(info.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, v.Number)

		clk.t = clk.t.Add(20 * time.Second)
		fb, err := svc.SubmitAnswer(info.ID, v.ID, a)
		require.NoError(t, err)
		assert.Equal(t, a == "beta", fb.Correct)
		assert.Equal(t, "beta", fb.CorrectAnswer)
		assert.Equal(t, "Beta is correct.", fb.Explanation)
		assert.Equal(t, i == 2, fb.Completed)
	}

	score, err := svc.Summary(info.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, score.Total)
	assert.Equal(t, 2, score.Correct)
	assert.Equal(t, 1, score.Incorrect)
	assert.Equal(t, 66.7, score.Accuracy)
	assert.Equal(t, int64(60), score.ElapsedSeconds)
	assert.Equal(t, "completed", score.State)

	got, err := svc.Session(info.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)

	_, err = svc.NextQuestion(info.ID)
	assert.ErrorIs(t, err, session.ErrInactive)
}

func TestSubmitAnswer_Errors(t *testing.T) {
	svc, _ := newService(t, DefaultLimits())
	info, err := svc.CreateSession("Physics", "Medium", 5)
	require.NoError(t, err)

	v, err := svc.NextQuestion(info.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(info.ID, v.ID, "epsilon")
	assert.ErrorIs(t, err, grading.ErrInvalidAnswer)

	_, err = svc.SubmitAnswer(info.ID, v.ID, "alpha")
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(info.ID, v.ID, "beta")
	assert.ErrorIs(t, err, session.ErrAlreadyAnswered)

	_, err = svc.SubmitAnswer("missing", v.ID, "beta")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNextQuestion_ExhaustedPool(t *testing.T) {
	svc, _ := newService(t, Limits{Default: 10, Min: 1, Max: 50})
	info, err := svc.CreateSession("Physics", "Medium", 6)
	require.NoError(t, err, "a short pool is not rejected up front")
	assert.Equal(t, 6, info.Target)

	for i := 0; i < 5; i++ {
		v, err := svc.NextQuestion(info.ID)
		require.NoError(t, err)
		_, err = svc.SubmitAnswer(info.ID, v.ID, "beta")
		require.NoError(t, err)
	}
	_, err = svc.NextQuestion(info.ID)
	assert.True(t, errors.Is(err, selection.ErrExhaustedPool), "got %v", err)

	got, err := svc.Session(info.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Asked)
	assert.True(t, got.Active())
}

func TestEndSession(t *testing.T) {
	svc, clk := newService(t, DefaultLimits())
	info, err := svc.CreateSession("Physics", "Medium", 5)
	require.NoError(t, err)

	v, err := svc.NextQuestion(info.ID)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(info.ID, v.ID, "beta")
	require.NoError(t, err)

	clk.t = clk.t.Add(45 * time.Second)
	ended, err := svc.EndSession(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "ended", ended.State)

	_, err = svc.EndSession(info.ID)
	assert.ErrorIs(t, err, session.ErrInactive)

	clk.t = clk.t.Add(time.Hour)
	score, err := svc.Summary(info.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, score.Total)
	assert.Equal(t, 100.0, score.Accuracy)
	assert.Equal(t, int64(45), score.ElapsedSeconds, "elapsed stops at end time")
}

func TestPrune(t *testing.T) {
	svc, clk := newService(t, DefaultLimits())
	active, err := svc.CreateSession("Physics", "Medium", 5)
	require.NoError(t, err)
	done, err := svc.CreateSession("Physics", "Medium", 5)
	require.NoError(t, err)
	_, err = svc.EndSession(done.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, svc.Prune(clk.t), "cutoff equal to end time keeps the session")
	assert.Equal(t, 1, svc.Prune(clk.t.Add(time.Minute)))
	assert.Equal(t, 1, svc.Len())

	_, err = svc.Session(active.ID)
	assert.NoError(t, err)
	_, err = svc.Session(done.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsAreIndependent(t *testing.T) {
	svc, _ := newService(t, DefaultLimits())
	a, err := svc.CreateSession("Physics", "Medium", 5)
	require.NoError(t, err)
	b, err := svc.CreateSession("Physics", "Medium", 5)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	done := make(chan error, 2)
	for _, id := range []string{a.ID, b.ID} {
		go func(id string) {
			for i := 0; i < 5; i++ {
				v, err := svc.NextQuestion(id)
				if err != nil {
					done <- err
					return
				}
				if _, err := svc.SubmitAnswer(id, v.ID, "beta"); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}(id)
	}
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	for _, id := range []string{a.ID, b.ID} {
		info, err := svc.Session(id)
		require.NoError(t, err)
		assert.Equal(t, "completed", info.State)
	}
}

func TestSessions_NewestFirst(t *testing.T) {
	svc, clk := newService(t, Limits{Default: 2, Min: 1, Max: 5})

	first, err := svc.CreateSession("Physics", "Medium", 2)
	require.NoError(t, err)
	clk.t = clk.t.Add(time.Minute)
	second, err := svc.CreateSession("Chemistry", "Easy", 1)
	require.NoError(t, err)

	got := svc.Sessions()
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, question.TopicChemistry, got[0].Topic)
}

func TestService_ConcurrentRegistryAccess(t *testing.T) {
	svc, clk := newService(t, Limits{Default: 5, Min: 1, Max: 5})
	cutoff := clk.t.Add(time.Hour)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				for _, info := range svc.Sessions() {
					if info.Answered > info.Asked {
						t.Errorf("session %s answered %d of %d asked", info.ID, info.Answered, info.Asked)
					}
				}
			}
		}
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				svc.Prune(cutoff)
			}
		}
	}()

	for i := 0; i < 200; i++ {
		info, err := svc.CreateSession("Physics", "Medium", 5)
		require.NoError(t, err)
		for j := 0; j < info.Target; j++ {
			v, err := svc.NextQuestion(info.ID)
			require.NoError(t, err)
			fb, err := svc.SubmitAnswer(info.ID, v.ID, "beta")
			require.NoError(t, err)
			assert.Equal(t, j+1, fb.Answered)
		}
	}
	close(stop)
	wg.Wait()

	svc.Prune(cutoff)
	assert.Equal(t, 0, svc.Len(), "every completed session is pruned")
}

func TestEndSession_WhileAnswering(t *testing.T) {
	svc, _ := newService(t, Limits{Default: 5, Min: 1, Max: 5})

	for i := 0; i < 50; i++ {
		info, err := svc.CreateSession("Physics", "Medium", 5)
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, err := svc.NextQuestion(info.ID)
				if err != nil {
					return
				}
				if _, err := svc.SubmitAnswer(info.ID, v.ID, "beta"); err != nil {
					return
				}
			}
		}()
		_, err = svc.EndSession(info.ID)
		if err != nil {
			assert.ErrorIs(t, err, session.ErrInactive)
		}
		wg.Wait()

		got, err := svc.Session(info.ID)
		require.NoError(t, err)
		assert.Contains(t, []string{"ended", "completed"}, got.State)
		assert.LessOrEqual(t, got.Answered, got.Asked)
	}
}
