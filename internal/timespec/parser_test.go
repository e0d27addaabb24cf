package timespec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("RFC3339", func(t *testing.T) {
		parsed, err := Parse("2026-09-08T09:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC), parsed.UTC())
	})

	t.Run("bare date is local midnight", func(t *testing.T) {
		parsed, err := Parse("2026-09-08")
		require.NoError(t, err)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, 0, parsed.Hour())
	})

	t.Run("date with time", func(t *testing.T) {
		parsed, err := Parse("2026-09-08 17:30")
		require.NoError(t, err)
		assert.Equal(t, 17, parsed.Hour())
		assert.Equal(t, 30, parsed.Minute())
	})

	t.Run("relative duration is in the future", func(t *testing.T) {
		parsed, err := Parse("+72h")
		require.NoError(t, err)
		assert.True(t, parsed.After(time.Now().Add(71*time.Hour)))
	})

	t.Run("empty spec fails", func(t *testing.T) {
		_, err := Parse("")
		assert.Error(t, err)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := Parse("next tuesday")
		assert.Error(t, err)
	})

	t.Run("bad duration fails", func(t *testing.T) {
		_, err := Parse("+tomorrow")
		assert.Error(t, err)
	})
}

func TestParseRange(t *testing.T) {
	t.Run("both bounds", func(t *testing.T) {
		start, end, err := ParseRange("2026-09-08", "2026-09-12")
		require.NoError(t, err)
		require.NotNil(t, start)
		require.NotNil(t, end)
		assert.True(t, start.Before(*end))
	})

	t.Run("empty specs mean unbounded", func(t *testing.T) {
		start, end, err := ParseRange("", "")
		require.NoError(t, err)
		assert.Nil(t, start)
		assert.Nil(t, end)
	})

	t.Run("start only", func(t *testing.T) {
		start, end, err := ParseRange("2026-09-08", "")
		require.NoError(t, err)
		assert.NotNil(t, start)
		assert.Nil(t, end)
	})

	t.Run("inverted range fails", func(t *testing.T) {
		_, _, err := ParseRange("2026-09-12", "2026-09-08")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--start must be before --end")
	})

	t.Run("bad start is attributed", func(t *testing.T) {
		_, _, err := ParseRange("bogus", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --start")
	})
}
