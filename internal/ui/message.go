package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgRunComplete
)

type runOutcome struct {
	summary *models.Summary
	err     error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// runCompleteMsg is the constructor for [MsgRunComplete]
func runCompleteMsg(summary *models.Summary, err error) Msg {
	return Msg{kind: MsgRunComplete, data: runOutcome{summary: summary, err: err}}
}
