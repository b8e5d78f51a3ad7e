// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skybreeze/fanctl/pkg/tr198a"
)

const remoteMaxLogEntries = 50

//////////////////////////////////////////////////////////////
// Key bindings
//////////////////////////////////////////////////////////////

type remoteKeyMap struct {
	Speed   key.Binding
	Forward key.Binding
	Reverse key.Binding
	Light   key.Binding
	DimUp   key.Binding
	DimDown key.Binding
	Breeze  key.Binding
	Timer   key.Binding
	Pair    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k remoteKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Speed, k.Light, k.Help, k.Quit}
}

func (k remoteKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Speed, k.Forward, k.Reverse},
		{k.Light, k.DimUp, k.DimDown},
		{k.Breeze, k.Timer, k.Pair},
		{k.Help, k.Quit},
	}
}

var remoteKeys = remoteKeyMap{
	Speed: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("0-9", "speed"),
	),
	Forward: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forward")),
	Reverse: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
	Light:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "light")),
	DimUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "dim up")),
	DimDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "dim down")),
	Breeze:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "breeze cycle")),
	Timer:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timer cycle")),
	Pair:    key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "pair")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

//////////////////////////////////////////////////////////////
// Model
//////////////////////////////////////////////////////////////

type remoteLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

type remoteModel struct {
	session  *remoteSession
	fanName  string
	connInfo string

	// Mirrored handset state. The protocol is one-way, so this reflects
	// what was sent, not what the fan is doing.
	speed     int
	direction tr198a.Direction
	breezeIdx int
	timerIdx  int

	log      []remoteLogEntry
	sending  bool
	keys     remoteKeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

type remoteSentMsg struct {
	desc string
	err  error
}

func initialRemoteModel(session *remoteSession, fanName, connInfo string) remoteModel {
	return remoteModel{
		session:   session,
		fanName:   fanName,
		connInfo:  connInfo,
		direction: tr198a.DirectionReverse,
		keys:      remoteKeys,
		help:      help.New(),
		width:     80,
		height:    24,
	}
}

func (m remoteModel) Init() tea.Cmd {
	return nil
}

//////////////////////////////////////////////////////////////
// Update
//////////////////////////////////////////////////////////////

func (m remoteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case remoteSentMsg:
		m.sending = false
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("%s failed: %v", msg.desc, msg.err), true)
		} else {
			m.addLogEntry(fmt.Sprintf("sent %s", msg.desc), false)
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m remoteModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.sending {
		// One transmission at a time; drop the keypress.
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Speed):
		level := int(msg.String()[0] - '0')
		m.speed = level
		cmd, err := tr198a.NewSpeedCommand(level, m.direction)
		return m.transmit(cmd, err)

	case key.Matches(msg, m.keys.Forward):
		m.direction = tr198a.DirectionForward
		cmd, err := tr198a.NewDirectionCommand(m.direction)
		return m.transmit(cmd, err)

	case key.Matches(msg, m.keys.Reverse):
		m.direction = tr198a.DirectionReverse
		cmd, err := tr198a.NewDirectionCommand(m.direction)
		return m.transmit(cmd, err)

	case key.Matches(msg, m.keys.Light):
		return m.transmit(tr198a.NewLightToggleCommand(), nil)

	case key.Matches(msg, m.keys.DimUp):
		cmd, err := tr198a.NewDimCommand(tr198a.DimUp, 1)
		return m.transmit(cmd, err)

	case key.Matches(msg, m.keys.DimDown):
		cmd, err := tr198a.NewDimCommand(tr198a.DimDown, 1)
		return m.transmit(cmd, err)

	case key.Matches(msg, m.keys.Breeze):
		m.breezeIdx = m.breezeIdx%3 + 1
		cmd, err := tr198a.NewBreezeCommand(tr198a.BreezePreset(m.breezeIdx))
		return m.transmit(cmd, err)

	case key.Matches(msg, m.keys.Timer):
		hours := []int{2, 4, 8}
		cmd, err := tr198a.NewTimerCommand(hours[m.timerIdx])
		m.timerIdx = (m.timerIdx + 1) % len(hours)
		return m.transmit(cmd, err)

	case key.Matches(msg, m.keys.Pair):
		return m.transmit(tr198a.NewPairCommand(), nil)
	}

	return m, nil
}

// transmit dispatches one command to the session off the UI goroutine.
func (m remoteModel) transmit(cmd tr198a.Command, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.addLogEntry(err.Error(), true)
		return m, nil
	}

	m.sending = true
	desc := cmd.String()
	session := m.session
	return m, func() tea.Msg {
		return remoteSentMsg{desc: desc, err: session.send(cmd)}
	}
}

func (m *remoteModel) addLogEntry(message string, isError bool) {
	m.log = append(m.log, remoteLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})
	if len(m.log) > remoteMaxLogEntries {
		m.log = m.log[len(m.log)-remoteMaxLogEntries:]
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m remoteModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("fanctl remote — %s (%s)", m.fanName, m.session.id)))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(m.connInfo))
	s.WriteString("\n\n")

	var state strings.Builder
	state.WriteString(labelStyle.Render("Speed:     "))
	if m.speed == 0 {
		state.WriteString(valueStyle.Render("off"))
	} else {
		state.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.speed)))
	}
	state.WriteString("\n")
	state.WriteString(labelStyle.Render("Direction: "))
	state.WriteString(valueStyle.Render(m.direction.String()))
	if m.sending {
		state.WriteString("\n")
		state.WriteString(headerStyle.Render("transmitting..."))
	}
	s.WriteString(boxStyle.Render(state.String()))
	s.WriteString("\n\n")

	logLines := m.height - 12
	if logLines < 3 {
		logLines = 3
	}
	start := 0
	if len(m.log) > logLines {
		start = len(m.log) - logLines
	}
	for _, entry := range m.log[start:] {
		line := fmt.Sprintf("%s %s", entry.timestamp.Format("15:04:05"), entry.message)
		if entry.isError {
			s.WriteString(errorStyle.Render(line))
		} else {
			s.WriteString(line)
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.help.View(m.keys))
	s.WriteString("\n")

	return s.String()
}
