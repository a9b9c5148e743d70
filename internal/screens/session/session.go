package session

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/explain"
	"github.com/abhisek/quizzy/internal/grading"
	"github.com/abhisek/quizzy/internal/practice"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	summaryscreen "github.com/abhisek/quizzy/internal/screens/summary"
	"github.com/abhisek/quizzy/internal/selection"
	sess "github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/layout"
)

// SessionScreen runs one practice session: question, answer, feedback,
// repeat, then hands over to the summary screen.
type SessionScreen struct {
	svc       *practice.Service
	explainer *explain.Explainer
	info      practice.Info

	question    *question.View
	choices     components.MultiChoice
	feedback    *practice.Feedback
	explanation string
	explaining  bool

	answered    int
	correct     int
	confirmQuit bool
	notice      string
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a SessionScreen for an already created session.
func New(svc *practice.Service, explainer *explain.Explainer, info practice.Info) *SessionScreen {
	return &SessionScreen{svc: svc, explainer: explainer, info: info}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.nextQuestion()
}

func (s *SessionScreen) Title() string {
	return string(s.info.Topic) + " · " + string(s.info.Difficulty)
}

// HandlesEscape keeps Esc for the quit confirmation instead of popping.
func (s *SessionScreen) HandlesEscape() bool { return true }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.errMsg != "" || s.feedback != nil:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "Esc", Description: "End"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.confirmQuit:
		return renderQuitConfirm(width, s.answered, s.info.Target)
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.question == nil:
		return renderLoading(width)
	case s.feedback != nil:
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return s.handleQuestionReady(msg)

	case explanationMsg:
		if s.question != nil && msg.QuestionID == s.question.ID {
			s.explaining = false
			if msg.Err == nil {
				s.explanation = msg.Text
			}
		}
		return s, nil

	case sessionEndMsg:
		return s, s.finish()

	case summaryReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		next := summaryscreen.New(msg.Score, s.notice)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, selection.ErrExhaustedPool) {
			s.notice = "Ran out of unique questions for this topic and difficulty."
			return s, s.end()
		}
		if errors.Is(msg.Err, sess.ErrInactive) || errors.Is(msg.Err, sess.ErrSessionComplete) {
			return s, s.finish()
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	q := msg.Question
	s.question = &q
	s.choices = components.NewMultiChoice(q.Options)
	s.feedback = nil
	s.explanation = ""
	s.explaining = false
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.end()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.feedback != nil {
		if s.feedback.Completed {
			return s, s.finish()
		}
		return s, s.nextQuestion()
	}

	if s.question == nil {
		return s, nil
	}

	s.choices, _ = s.choices.Update(msg)
	if answer, ok := s.choices.Chosen(); ok {
		return s.submit(answer)
	}
	return s, nil
}

func (s *SessionScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	fb, err := s.svc.SubmitAnswer(s.info.ID, s.question.ID, answer)
	if err != nil {
		if errors.Is(err, grading.ErrInvalidAnswer) {
			s.choices.Unchoose()
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}

	s.feedback = &fb
	s.answered = fb.Answered
	if fb.Correct {
		s.correct++
	}
	s.choices.Reveal(fb.CorrectAnswer)
	s.explanation = fb.Explanation

	if s.explanation == "" && s.explainer != nil {
		s.explaining = true
		return s, s.explain(s.question.ID, answer)
	}
	return s, nil
}

func (s *SessionScreen) nextQuestion() tea.Cmd {
	svc, id := s.svc, s.info.ID
	return func() tea.Msg {
		q, err := svc.NextQuestion(id)
		return questionReadyMsg{Question: q, Err: err}
	}
}

func (s *SessionScreen) explain(questionID, answer string) tea.Cmd {
	svc, explainer := s.svc, s.explainer
	return func() tea.Msg {
		rec, err := svc.Question(questionID)
		if err != nil {
			return explanationMsg{QuestionID: questionID, Err: err}
		}
		text, err := explainer.Explain(context.Background(), rec, answer)
		return explanationMsg{QuestionID: questionID, Text: text, Err: err}
	}
}

// end stops the session early, then shows the summary.
func (s *SessionScreen) end() tea.Cmd {
	if _, err := s.svc.EndSession(s.info.ID); err != nil && !errors.Is(err, sess.ErrInactive) {
		s.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg { return sessionEndMsg{} }
}

func (s *SessionScreen) finish() tea.Cmd {
	svc, id := s.svc, s.info.ID
	return func() tea.Msg {
		score, err := svc.Summary(id)
		return summaryReadyMsg{Score: score, Err: err}
	}
}
