package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(model)
}

func press(t *testing.T, m model, k tea.KeyType) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(model), cmd
}

func TestModel_FillAndSubmit(t *testing.T) {
	m := newModel()
	m = typeText(t, m, "bearer")
	m, _ = press(t, m, tea.KeyEnter)
	assert.Equal(t, fieldCSRF, m.focus)

	m = typeText(t, m, "csrf")
	m, _ = press(t, m, tea.KeyEnter)
	assert.Equal(t, fieldCookie, m.focus)

	m = typeText(t, m, "auth_token=a; _twitter_sess=s; ct0=c")
	m, cmd := press(t, m, tea.KeyEnter)
	require.True(t, m.done)
	require.NotNil(t, cmd)
	assert.Equal(t, Answers{
		AuthorizationToken: "bearer",
		CSRFToken:          "csrf",
		Cookie:             "auth_token=a; _twitter_sess=s; ct0=c",
	}, m.answers())
	assert.Empty(t, m.View())
}

func TestModel_InvalidCookieStays(t *testing.T) {
	m := newModel()
	m = typeText(t, m, "bearer")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "csrf")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "auth_token=a")

	m, _ = press(t, m, tea.KeyEnter)
	assert.False(t, m.done)
	assert.Equal(t, fieldCookie, m.focus)
	assert.Equal(t, "cookie _twitter_sess missing", m.errMsg)
	assert.Contains(t, m.View(), "cookie _twitter_sess missing")
}

func TestModel_EmptyFieldRequired(t *testing.T) {
	m := newModel()
	m, _ = press(t, m, tea.KeyEnter)
	assert.Equal(t, fieldBearer, m.focus)
	assert.Contains(t, m.errMsg, "required")
}

func TestModel_Navigation(t *testing.T) {
	m := newModel()
	m, _ = press(t, m, tea.KeyShiftTab)
	assert.Equal(t, fieldCookie, m.focus)
	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, fieldBearer, m.focus)
}

func TestModel_Cancel(t *testing.T) {
	m := newModel()
	m, cmd := press(t, m, tea.KeyEsc)
	assert.True(t, m.cancelled)
	assert.False(t, m.done)
	assert.NotNil(t, cmd)
}
