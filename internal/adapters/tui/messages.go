package tui

import "time"

// MsgInitTasks announces the tasks of a run in execution order.
type MsgInitTasks struct {
	Run   string
	Tasks []string
}

// MsgTaskStart is sent when a task span starts.
type MsgTaskStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgTaskLog carries output of a task span. Data may contain partial lines.
type MsgTaskLog struct {
	SpanID string
	Data   []byte
}

// MsgTaskComplete is sent when a task span ends.
type MsgTaskComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}

// MsgTick makes the model poll the run progress.
type MsgTick time.Time
