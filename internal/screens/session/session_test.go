package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/explain"
	"github.com/abhisek/quizzy/internal/practice"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/selection"
	summaryscreen "github.com/abhisek/quizzy/internal/screens/summary"
)

func newTestService(t *testing.T, n int) *practice.Service {
	t.Helper()
	return newServiceWith(t, n, "Doubling.")
}

func newServiceWith(t *testing.T, n int, explanation string) *practice.Service {
	t.Helper()
	var records []question.Record
	for i := 1; i <= n; i++ {
		records = append(records, question.Record{
			ID:          fmt.Sprintf("math_%d", i),
			Topic:       question.TopicMath,
			Difficulty:  question.DifficultyEasy,
			Kind:        question.KindMultipleChoice,
			Text:        fmt.Sprintf("What is %d + %d?", i, i),
			Options:     [question.OptionCount]string{"1", fmt.Sprint(2 * i), "0", "-1"},
			Answer:      fmt.Sprint(2 * i),
			Explanation: explanation,
		})
	}
	cat, err := catalog.New(records)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	svc, err := practice.NewService(practice.Options{
		Catalog: cat,
		Picker:  selection.NewSeeded(7),
		Limits:  practice.Limits{Default: 5, Min: 1, Max: 10},
		Now:     func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}

func newTestScreen(t *testing.T, svc *practice.Service, target int, explainer *explain.Explainer) *SessionScreen {
	t.Helper()
	info, err := svc.CreateSession("math", "easy", target)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return New(svc, explainer, info)
}

// run executes cmd and feeds the resulting message back into the screen.
func run(t *testing.T, s *SessionScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := s.Update(cmd())
	return next
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// correctDigit returns the key that answers the current question correctly.
func correctDigit(t *testing.T, s *SessionScreen) rune {
	t.Helper()
	rec, err := s.svc.Question(s.question.ID)
	if err != nil {
		t.Fatalf("lookup question: %v", err)
	}
	for i, opt := range s.question.Options {
		if opt == rec.Answer {
			return rune('1' + i)
		}
	}
	t.Fatalf("answer %q not among options", rec.Answer)
	return 0
}

func TestSessionScreen_LoadsFirstQuestion(t *testing.T) {
	svc := newTestService(t, 5)
	s := newTestScreen(t, svc, 3, nil)

	if !strings.Contains(s.View(100, 40), "Picking a question") {
		t.Error("expected loading view before the first question")
	}

	run(t, s, s.Init())
	if s.question == nil {
		t.Fatal("expected a question after Init")
	}
	if !strings.Contains(s.View(100, 40), s.question.Text) {
		t.Error("view should show the question text")
	}
}

func TestSessionScreen_AnswerShowsFeedback(t *testing.T) {
	svc := newTestService(t, 5)
	s := newTestScreen(t, svc, 3, nil)
	run(t, s, s.Init())
	first := s.question.ID

	_, cmd := s.Update(keyPress(correctDigit(t, s)))
	if cmd != nil {
		t.Error("no explanation request expected when one is stored")
	}
	if s.feedback == nil || !s.feedback.Correct {
		t.Fatal("expected correct feedback")
	}
	if s.answered != 1 || s.correct != 1 {
		t.Errorf("answered=%d correct=%d, want 1/1", s.answered, s.correct)
	}
	if !strings.Contains(s.View(100, 40), "Doubling.") {
		t.Error("feedback view should show the explanation")
	}

	_, cmd = s.Update(keyPress(' '))
	run(t, s, cmd)
	if s.feedback != nil {
		t.Error("feedback should clear on the next question")
	}
	if s.question.ID == first {
		t.Error("question repeated within a session")
	}
}

func TestSessionScreen_WrongAnswer(t *testing.T) {
	svc := newTestService(t, 5)
	s := newTestScreen(t, svc, 3, nil)
	run(t, s, s.Init())

	wrong := '1'
	if correctDigit(t, s) == '1' {
		wrong = '2'
	}
	s.Update(keyPress(wrong))
	if s.feedback == nil || s.feedback.Correct {
		t.Fatal("expected incorrect feedback")
	}
	if s.correct != 0 {
		t.Errorf("correct = %d, want 0", s.correct)
	}
}

func TestSessionScreen_CompletionShowsSummary(t *testing.T) {
	svc := newTestService(t, 5)
	s := newTestScreen(t, svc, 2, nil)
	run(t, s, s.Init())

	s.Update(keyPress(correctDigit(t, s)))
	_, cmd := s.Update(keyPress(' '))
	run(t, s, cmd)
	s.Update(keyPress(correctDigit(t, s)))
	if !s.feedback.Completed {
		t.Fatal("session should complete after the target is reached")
	}

	_, cmd = s.Update(keyPress(' '))
	next := run(t, s, cmd)
	if next == nil {
		t.Fatal("expected a screen change")
	}
	replace, ok := next().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", next())
	}
	if _, ok := replace.Screen.(*summaryscreen.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", replace.Screen)
	}
}

func TestSessionScreen_EscapeConfirmsQuit(t *testing.T) {
	svc := newTestService(t, 5)
	s := newTestScreen(t, svc, 3, nil)
	run(t, s, s.Init())

	s.Update(specialKey(tea.KeyEscape))
	if !s.confirmQuit {
		t.Fatal("Esc should ask for confirmation")
	}
	s.Update(keyPress('n'))
	if s.confirmQuit {
		t.Fatal("n should cancel the confirmation")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	info, err := svc.Session(s.info.ID)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if info.State != "ended" {
		t.Errorf("state = %q, want ended", info.State)
	}

	summaryCmd := run(t, s, cmd)
	if _, ok := run(t, s, summaryCmd)().(router.ReplaceScreenMsg); ok {
		return
	}
	t.Error("expected summary screen after ending")
}

func TestSessionScreen_ExhaustedPoolEndsSession(t *testing.T) {
	svc := newTestService(t, 1)
	s := newTestScreen(t, svc, 3, nil)
	run(t, s, s.Init())

	s.Update(keyPress(correctDigit(t, s)))
	_, cmd := s.Update(keyPress(' '))
	next := run(t, s, cmd)

	if s.notice == "" {
		t.Error("expected an exhausted pool notice")
	}
	info, _ := svc.Session(s.info.ID)
	if info.State != "ended" {
		t.Errorf("state = %q, want ended", info.State)
	}
	if next == nil {
		t.Fatal("expected the end flow to start")
	}
}

func TestSessionScreen_RequestsExplanation(t *testing.T) {
	svc := newServiceWith(t, 5, "")
	stub := explain.NewStub()
	stub.Add(explain.StubReply{JSON: json.RawMessage(`{"explanation":"Add the number to itself."}`)})
	explainer := explain.NewExplainer(stub, time.Second)

	s := newTestScreen(t, svc, 3, explainer)
	run(t, s, s.Init())

	_, cmd := s.Update(keyPress(correctDigit(t, s)))
	if !s.explaining {
		t.Fatal("expected an explanation request")
	}
	if !strings.Contains(s.View(100, 40), "Asking the tutor") {
		t.Error("view should show the pending explanation")
	}

	run(t, s, cmd)
	if s.explaining {
		t.Error("explaining flag should clear once the reply arrives")
	}
	if s.explanation != "Add the number to itself." {
		t.Errorf("explanation = %q", s.explanation)
	}
	if stub.CallCount() != 1 {
		t.Errorf("provider calls = %d, want 1", stub.CallCount())
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	svc := newTestService(t, 5)
	s := newTestScreen(t, svc, 3, nil)
	if len(s.KeyHints()) != 3 {
		t.Errorf("question hints = %d, want 3", len(s.KeyHints()))
	}
	s.confirmQuit = true
	if s.KeyHints()[0].Key != "Y" {
		t.Error("confirm hints should lead with Y")
	}
	if !s.HandlesEscape() {
		t.Error("session screen should handle Esc itself")
	}
}
