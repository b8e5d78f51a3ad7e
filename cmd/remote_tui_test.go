package cmd

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybreeze/fanctl/pkg/tr198a"
)

type stubSender struct {
	delivered int
}

func (s *stubSender) Deliver(ctx context.Context, p *tr198a.Packet) error {
	s.delivered++
	return nil
}

func (s *stubSender) Target() string { return "stub" }
func (s *stubSender) Close() error   { return nil }

// pressKey drives one keypress through the model, runs the transmission it
// schedules, and feeds the completion message back so the next press is not
// dropped by the in-flight guard. Returns the sent command's description.
func pressKey(t *testing.T, m *remoteModel, k string) string {
	t.Helper()

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	*m = model.(remoteModel)
	require.NotNil(t, cmd, "key %q scheduled no transmission", k)

	msg, ok := cmd().(remoteSentMsg)
	require.True(t, ok, "key %q produced an unexpected message", k)
	require.NoError(t, msg.err)

	model, _ = m.Update(msg)
	*m = model.(remoteModel)
	return msg.desc
}

func TestRemoteTimerCycle(t *testing.T) {
	sender := &stubSender{}
	session := &remoteSession{id: 0x15A9, sender: sender}
	m := initialRemoteModel(session, "bedroom", "Serial: /dev/null @ 115200 baud")

	// The cycle starts at the handset's shortest setting and wraps.
	assert.Equal(t, "timer 2h", pressKey(t, &m, "t"))
	assert.Equal(t, "timer 4h", pressKey(t, &m, "t"))
	assert.Equal(t, "timer 8h", pressKey(t, &m, "t"))
	assert.Equal(t, "timer 2h", pressKey(t, &m, "t"))
	assert.Equal(t, 4, sender.delivered)
}

func TestRemoteBreezeCycle(t *testing.T) {
	session := &remoteSession{id: 0x15A9, sender: &stubSender{}}
	m := initialRemoteModel(session, "bedroom", "Serial: /dev/null @ 115200 baud")

	assert.Equal(t, "breeze 1", pressKey(t, &m, "b"))
	assert.Equal(t, "breeze 2", pressKey(t, &m, "b"))
	assert.Equal(t, "breeze 3", pressKey(t, &m, "b"))
	assert.Equal(t, "breeze 1", pressKey(t, &m, "b"))
}
