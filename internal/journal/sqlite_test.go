package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stacks")
	j, err := Open(dir)
	require.NoError(t, err)
	defer j.Close()

	_, err = j.Record(OpPush, "work", []string{"HOME", "PATH"})
	require.NoError(t, err)
	_, err = j.Record(OpPush, "play", []string{"EDITOR"})
	require.NoError(t, err)
	ev, err := j.Record(OpPop, "work", []string{"HOME", "PATH"})
	require.NoError(t, err)
	assert.Equal(t, "HOME,PATH", ev.Vars)

	events, err := j.List("", 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, OpPop, events[0].Op)
	assert.Equal(t, "play", events[1].Stack)
	assert.False(t, events[0].CreatedAt.IsZero())

	events, err = j.List("work", 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, OpPop, events[0].Op)

	n, err := j.Count("")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = j.Count("work")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReopenKeepsEvents(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(dir)
	require.NoError(t, err)
	_, err = j.Record(OpPush, "a", []string{"X"})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = Open(dir)
	require.NoError(t, err)
	defer j.Close()
	n, err := j.Count("")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
