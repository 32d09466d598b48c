package history

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relcheck/relcheck/internal/scoring"
	"github.com/relcheck/relcheck/internal/screen"
	"github.com/relcheck/relcheck/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func seeded(t *testing.T) (*HistoryScreen, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, answers := range []scoring.Answers{
		{1: scoring.Yes(), 5: scoring.Yes()},
		{2: scoring.Yes()},
	} {
		res := scoring.Score(answers)
		_, err := st.AssessmentRepo().Insert(context.Background(), store.AssessmentData{
			UserID:     "sam",
			Answers:    answers,
			Percentage: res.Percentage,
			Result:     res,
			Notes:      "week " + string(rune('1'+i)),
			CreatedAt:  base.Add(time.Duration(i) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}

	s := New(screen.Deps{UserID: "sam", Assessments: st.AssessmentRepo()})
	s.Update(s.Init()())
	require.True(t, s.loaded)
	return s, st
}

func TestHistory_NewestFirst(t *testing.T) {
	s, _ := seeded(t)
	require.Len(t, s.records, 2)
	assert.Equal(t, "week 2", s.records[0].Notes)

	view := s.View(100, 30)
	assert.Contains(t, view, "Immediate Attention Required")
	assert.Contains(t, view, "Healthy Relationship")
}

func TestHistory_ExpandShowsFlagsAndNotes(t *testing.T) {
	s, _ := seeded(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	view := s.View(120, 40)
	assert.Contains(t, view, "week 1")
	assert.Contains(t, view, "2 answered, 0 skipped")
}

func TestHistory_DeleteAfterConfirm(t *testing.T) {
	s, st := seeded(t)

	s.Update(keyPress('d'))
	assert.True(t, s.deleting)
	s.Update(keyPress('n'))
	assert.False(t, s.deleting)

	s.Update(keyPress('d'))
	_, cmd := s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	_, reload := s.Update(cmd())
	require.NotNil(t, reload)
	s.Update(reload())

	require.Len(t, s.records, 1)
	assert.Equal(t, "week 1", s.records[0].Notes)

	recs, err := st.AssessmentRepo().ListByUser(context.Background(), "sam", store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestHistory_Empty(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	s := New(screen.Deps{UserID: "nobody", Assessments: st.AssessmentRepo()})
	s.Update(s.Init()())
	assert.Contains(t, s.View(80, 24), "No check-ins yet.")

	_, cmd := s.Update(keyPress('d'))
	assert.Nil(t, cmd)
	assert.False(t, s.deleting)
}
