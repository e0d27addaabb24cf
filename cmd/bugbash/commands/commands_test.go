package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBoltConfig points configPath at a fresh bolt-backed bugbash.yml
// and restores the previous path when the test ends.
func writeBoltConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bugbash.yml")
	content := fmt.Sprintf(`version: "1.0"
instance: test
storage:
  backend: bolt
  path: %s
tracking:
  base_url: https://dev.azure.com/contoso
scope:
  project: proj-1
  team: team-1
`, filepath.Join(dir, "bugbash.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	previous := configPath
	configPath = path
	t.Cleanup(func() { configPath = previous })
}

func TestNewSession(t *testing.T) {
	t.Run("wires the full graph from a bolt config", func(t *testing.T) {
		writeBoltConfig(t)

		sess, err := newSession()
		require.NoError(t, err)
		defer sess.Close()

		assert.Equal(t, "test", sess.cfg.Instance)
		assert.NotNil(t, sess.creator)
		assert.False(t, sess.bashes.IsLoaded())
	})

	t.Run("missing config file fails", func(t *testing.T) {
		previous := configPath
		configPath = "/nonexistent/bugbash.yml"
		t.Cleanup(func() { configPath = previous })

		_, err := newSession()
		require.Error(t, err)
	})
}

func TestParseItemIDs(t *testing.T) {
	ids, err := parseItemIDs([]string{"12", "7", "103"})
	require.NoError(t, err)
	assert.Equal(t, []int{12, 7, 103}, ids)

	_, err = parseItemIDs([]string{"12", "abc"})
	assert.Error(t, err)
}

func TestPickItems(t *testing.T) {
	items := []*bugbash.WorkItem{
		{ID: 1, Fields: map[string]string{bugbash.FieldTitle: "one"}},
		{ID: 2, Fields: map[string]string{bugbash.FieldTitle: "two"}},
	}

	found, missing := pickItems(items, []int{2, 5, 1})
	require.Len(t, found, 2)
	assert.Equal(t, 2, found[0].ID)
	assert.Equal(t, 1, found[1].ID)
	assert.Equal(t, []int{5}, missing)
}

func TestFilterByStatus(t *testing.T) {
	items := []*bugbash.WorkItem{
		{ID: 1, Fields: map[string]string{bugbash.FieldTags: bugbash.AcceptedTag}},
		{ID: 2, Fields: map[string]string{bugbash.FieldTags: bugbash.RejectedTag}},
		{ID: 3, Fields: map[string]string{}},
	}

	assert.Len(t, filterByStatus(items, "accepted"), 1)
	assert.Len(t, filterByStatus(items, "rejected"), 1)
	assert.Len(t, filterByStatus(items, "pending"), 1)
	assert.Len(t, filterByStatus(items, "everything"), 3)
}

func TestApplyTimeFlags(t *testing.T) {
	t.Run("sets both bounds", func(t *testing.T) {
		editable := bugbash.NewEditableNew()
		require.NoError(t, applyTimeFlags(editable, "2026-09-08", "2026-09-12"))
		model := editable.Model()
		require.NotNil(t, model.StartTime)
		require.NotNil(t, model.EndTime)
		assert.True(t, model.StartTime.Before(*model.EndTime))
	})

	t.Run("leaves unset flags nil", func(t *testing.T) {
		editable := bugbash.NewEditableNew()
		require.NoError(t, applyTimeFlags(editable, "", ""))
		assert.Nil(t, editable.Model().StartTime)
		assert.Nil(t, editable.Model().EndTime)
	})

	t.Run("reports unparseable input", func(t *testing.T) {
		editable := bugbash.NewEditableNew()
		assert.Error(t, applyTimeFlags(editable, "soon", ""))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-te", truncate("exactly-te", 10))
	assert.Equal(t, "toolon...", truncate("toolongvalue", 9))

	// Cutting must not split a multi-byte rune.
	assert.Equal(t, "ログインが...", truncate("ログインができない問題", 8))
	assert.Equal(t, "ログインができない", truncate("ログインができない", 9))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", formatTime(nil))
	ts := time.Date(2026, 9, 8, 9, 30, 0, 0, time.UTC)
	assert.NotEmpty(t, formatTime(&ts))
}

func TestScheduleLabel(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	earlier := time.Now().Add(-24 * time.Hour)
	later := time.Now().Add(24 * time.Hour)

	b := bugbash.New()
	assert.Equal(t, "current", scheduleLabel(b))

	b.StartTime, b.EndTime = &past, &earlier
	assert.Equal(t, "past", scheduleLabel(b))

	b.StartTime, b.EndTime = &later, nil
	assert.Equal(t, "upcoming", scheduleLabel(b))
}
