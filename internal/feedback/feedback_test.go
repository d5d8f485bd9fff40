package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_VisibleNewestFirstCappedAtThree(t *testing.T) {
	q := &Queue{}
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	for i, msg := range []string{"a", "b", "c", "d"} {
		q.Push(SeveritySuccess, msg, "ltr", start.Add(time.Duration(i)*time.Millisecond))
	}

	visible := q.Visible(start.Add(time.Second))
	require.Len(t, visible, MaxVisible)
	assert.Equal(t, "d", visible[0].Message)
	assert.Equal(t, "c", visible[1].Message)
	assert.Equal(t, "b", visible[2].Message)
}

func TestQueue_AutoDismissAfterLifetime(t *testing.T) {
	q := &Queue{}
	start := time.Now()
	q.Push(SeverityError, "boom", "rtl", start)

	assert.Len(t, q.Visible(start.Add(4*time.Second)), 1)
	assert.Empty(t, q.Visible(start.Add(Lifetime)))
	assert.Equal(t, 0, q.Len())
}

func TestQueue_PauseStopsTheClock(t *testing.T) {
	q := &Queue{}
	start := time.Now()
	e := q.Push(SeverityInfo, "hover me", "ltr", start)

	require.True(t, q.Pause(e.ID, start.Add(2*time.Second)))
	assert.False(t, q.Pause(e.ID, start.Add(3*time.Second)))

	// Paused for 10s, still visible.
	assert.Len(t, q.Visible(start.Add(12*time.Second)), 1)

	require.True(t, q.Resume(e.ID, start.Add(12*time.Second)))
	visible := q.Visible(start.Add(14 * time.Second))
	require.Len(t, visible, 1)
	assert.Equal(t, time.Second, visible[0].Remaining(start.Add(14*time.Second)))

	assert.Empty(t, q.Visible(start.Add(15*time.Second)))
}

func TestQueue_Dismiss(t *testing.T) {
	q := &Queue{}
	now := time.Now()
	a := q.Push(SeveritySuccess, "a", "ltr", now)
	q.Push(SeveritySuccess, "b", "ltr", now)

	assert.True(t, q.Dismiss(a.ID))
	assert.False(t, q.Dismiss(a.ID))
	visible := q.Visible(now)
	require.Len(t, visible, 1)
	assert.Equal(t, "b", visible[0].Message)
}
