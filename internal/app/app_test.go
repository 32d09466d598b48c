package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relcheck/relcheck/internal/router"
	"github.com/relcheck/relcheck/internal/screen"
	"github.com/relcheck/relcheck/internal/store"
)

func newModel(t *testing.T) AppModel {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return newAppModel(screen.Deps{
		UserID:      "sam",
		Progress:    st.ProgressRepo(),
		Assessments: st.AssessmentRepo(),
	})
}

func TestAppModel_ViewShowsUserAndTitle(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(AppModel)

	content := m.render()
	assert.Contains(t, content, "relcheck")
	assert.Contains(t, content, "Home")
	assert.Contains(t, content, "sam")
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, next.(AppModel).render(), "Terminal too small")
}

func TestAppModel_EscapeAtRootIsNoop(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestAppModel_EscapeLeftToHandlingScreen(t *testing.T) {
	m := newModel(t)

	// Start check-in pushes the survey, which confirms before leaving.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, initCmd := m.Update(cmd())
	require.Equal(t, 2, m.router.Depth())
	require.NotNil(t, initCmd)
	m.Update(initCmd())

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		_, isPop := cmd().(router.PopScreenMsg)
		assert.False(t, isPop)
	}
	assert.Equal(t, 2, m.router.Depth())
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
