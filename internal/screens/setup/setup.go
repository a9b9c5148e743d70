package setup

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/explain"
	"github.com/abhisek/quizzy/internal/practice"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	quiz "github.com/abhisek/quizzy/internal/screens/session"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

type step int

const (
	stepTopic step = iota
	stepDifficulty
	stepCount
)

type (
	topicChosenMsg      struct{ topic question.Topic }
	difficultyChosenMsg struct{ difficulty question.Difficulty }
)

// SetupScreen collects topic, difficulty and question count, then starts
// a session.
type SetupScreen struct {
	svc       *practice.Service
	explainer *explain.Explainer

	step       step
	topic      question.Topic
	difficulty question.Difficulty
	topics     components.Menu
	levels     components.Menu
	count      components.TextInput
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen.
func New(svc *practice.Service, explainer *explain.Explainer) *SetupScreen {
	s := &SetupScreen{svc: svc, explainer: explainer}

	var items []components.MenuItem
	for _, t := range question.AllTopics() {
		n := 0
		for _, d := range question.AllDifficulties() {
			n += svc.Catalog().CountEligible(t, d)
		}
		items = append(items, components.MenuItem{
			Label:    string(t),
			Hint:     fmt.Sprintf("%d questions", n),
			Disabled: n == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg { return topicChosenMsg{topic: t} }
			},
		})
	}
	s.topics = components.NewMenu(items)
	return s
}

func (s *SetupScreen) Init() tea.Cmd { return nil }

func (s *SetupScreen) Title() string { return "New Practice" }

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.step == stepCount {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) levelMenu() components.Menu {
	var items []components.MenuItem
	for _, d := range question.AllDifficulties() {
		n := s.svc.Catalog().CountEligible(s.topic, d)
		items = append(items, components.MenuItem{
			Label:    string(d),
			Hint:     fmt.Sprintf("%d questions", n),
			Disabled: n == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg { return difficultyChosenMsg{difficulty: d} }
			},
		})
	}
	return components.NewMenu(items)
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicChosenMsg:
		s.topic = msg.topic
		s.levels = s.levelMenu()
		s.step = stepDifficulty
		return s, nil

	case difficultyChosenMsg:
		s.difficulty = msg.difficulty
		limits := s.svc.Limits()
		s.count = components.NewTextInput(fmt.Sprintf("%d", limits.Default), true, 3)
		s.step = stepCount
		return s, s.count.Init()

	case tea.KeyMsg:
		if msg.String() == "backspace" && s.step != stepCount {
			return s.back()
		}
	}

	var cmd tea.Cmd
	switch s.step {
	case stepTopic:
		s.topics, cmd = s.topics.Update(msg)
	case stepDifficulty:
		s.levels, cmd = s.levels.Update(msg)
	case stepCount:
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			return s.start()
		}
		s.errMsg = ""
		s.count, cmd = s.count.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) back() (screen.Screen, tea.Cmd) {
	if s.step > stepTopic {
		s.step--
	}
	s.errMsg = ""
	return s, nil
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	limits := s.svc.Limits()
	n, err := s.count.NumericValue(limits.Default)
	if err != nil {
		s.errMsg = "Enter a whole number"
		return s, nil
	}

	info, err := s.svc.CreateSession(string(s.topic), string(s.difficulty), n)
	if err != nil {
		var verr *practice.ValidationError
		if errors.As(err, &verr) {
			s.errMsg = verr.Reason
		} else {
			s.errMsg = err.Error()
		}
		s.count.Submit(false)
		return s, nil
	}

	next := quiz.New(s.svc, s.explainer, info)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	label := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Set up your practice"))
	b.WriteString("\n\n")

	switch s.step {
	case stepTopic:
		b.WriteString(label.Render("Choose a topic"))
		b.WriteString("\n\n")
		b.WriteString(s.topics.View())
	case stepDifficulty:
		b.WriteString(label.Render("Topic: ") + theme.Body.Render(string(s.topic)))
		b.WriteString("\n\n")
		b.WriteString(label.Render("Choose a difficulty"))
		b.WriteString("\n\n")
		b.WriteString(s.levels.View())
	case stepCount:
		limits := s.svc.Limits()
		pool := s.svc.Catalog().CountEligible(s.topic, s.difficulty)
		b.WriteString(label.Render("Topic: ") + theme.Body.Render(string(s.topic)))
		b.WriteString(label.Render("   Difficulty: ") + theme.Body.Render(string(s.difficulty)))
		b.WriteString("\n\n")
		b.WriteString(label.Render(fmt.Sprintf("How many questions? (%d-%d, %d available)", limits.Min, limits.Max, pool)))
		b.WriteString("\n\n")
		b.WriteString("  " + s.count.View())
		if s.errMsg != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.Incorrect.Render(s.errMsg))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}
