// Package tui provides an interactive progress view for test runs.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
)

const (
	tickInterval = 100 * time.Millisecond
	maxLogLines  = 5
	defaultWidth = 80
)

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to start.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusDone indicates the task completed.
	StatusDone TaskStatus = "Done"
	// StatusError indicates the task failed.
	StatusError TaskStatus = "Error"
)

// TaskNode is one task of the run.
type TaskNode struct {
	Name   string
	Status TaskStatus
	// Logs holds the last complete output lines.
	Logs    []string
	partial string
}

// Model is the progress view of one test run.
type Model struct {
	Run        string
	Tasks      []*TaskNode
	SpanMap    map[string]*TaskNode
	ActiveTask *TaskNode

	Current int
	Max     int
	Width   int
	Bar     progress.Model

	source      ports.ProgressFunc
	onInterrupt func()
	disableTick bool
}

// NewModel creates a model that polls source for the run progress.
func NewModel(source ports.ProgressFunc) Model {
	return Model{
		Tasks:   make([]*TaskNode, 0),
		SpanMap: make(map[string]*TaskNode),
		Width:   defaultWidth,
		Bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		source:  source,
	}
}

// WithDisableTick turns off periodic polling. Progress is then only read on
// task completion.
//
//nolint:gocritic // hugeParam ignored
func (m Model) WithDisableTick() Model {
	m.disableTick = true
	return m
}

// WithInterrupt sets the function called when the user presses ctrl+c or q.
//
//nolint:gocritic // hugeParam ignored
func (m Model) WithInterrupt(fn func()) Model {
	m.onInterrupt = fn
	return m
}

// Init starts polling.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	if m.disableTick {
		return nil
	}
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return MsgTick(t) })
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per message
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.onInterrupt != nil {
				m.onInterrupt()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	case MsgTick:
		m.poll()
		return m, m.tick()
	case MsgInitTasks:
		m.Run = msg.Run
		m.Tasks = make([]*TaskNode, len(msg.Tasks))
		m.SpanMap = make(map[string]*TaskNode)
		for i, name := range msg.Tasks {
			m.Tasks[i] = &TaskNode{Name: name, Status: StatusPending}
		}
		m.poll()
	case MsgTaskStart:
		// Labels repeat when a suite runs against several test objects.
		for _, node := range m.Tasks {
			if node.Name == msg.Name && node.Status == StatusPending {
				node.Status = StatusRunning
				m.SpanMap[msg.SpanID] = node
				m.ActiveTask = node
				break
			}
		}
	case MsgTaskLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			node.appendLog(string(msg.Data))
		}
	case MsgTaskComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			if msg.Err != nil {
				node.Status = StatusError
			} else {
				node.Status = StatusDone
			}
			delete(m.SpanMap, msg.SpanID)
		}
		m.poll()
	}
	return m, nil
}

func (m *Model) poll() {
	if m.source == nil {
		return
	}
	current, maxSteps, err := m.source()
	if err != nil {
		return
	}
	m.Current, m.Max = current, maxSteps
}

// Ratio returns the completed share of the run between 0 and 1.
func (m *Model) Ratio() float64 {
	if m.Max <= 0 {
		return 0
	}
	return float64(m.Current) / float64(m.Max)
}

func (n *TaskNode) appendLog(data string) {
	lines := strings.Split(n.partial+data, "\n")
	n.partial = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		n.Logs = append(n.Logs, line)
	}
	if len(n.Logs) > maxLogLines {
		n.Logs = n.Logs[len(n.Logs)-maxLogLines:]
	}
}
