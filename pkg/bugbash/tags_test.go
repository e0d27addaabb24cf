package bugbash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagInspection(t *testing.T) {
	tags := "BugBash_123;BugBashItemAccepted"

	assert.True(t, HasBashTag(tags, "123"))
	assert.False(t, HasBashTag(tags, "456"))
	assert.True(t, IsAccepted(tags))
	assert.False(t, IsRejected(tags))

	t.Run("case-insensitive matching", func(t *testing.T) {
		assert.True(t, IsAccepted("bugbashitemaccepted"))
		assert.True(t, HasBashTag("BUGBASH_123", "123"))
	})

	t.Run("whitespace around separators ignored", func(t *testing.T) {
		assert.True(t, IsRejected("one; BugBashItemRejected ; two"))
	})
}

func TestApplyOutcome(t *testing.T) {
	t.Run("reject replaces accept", func(t *testing.T) {
		got := ApplyRejected("BugBash_123;BugBashItemAccepted")
		assert.True(t, IsRejected(got))
		assert.False(t, IsAccepted(got))
		assert.True(t, HasBashTag(got, "123"))
	})

	t.Run("accept replaces reject", func(t *testing.T) {
		got := ApplyAccepted("BugBash_123;BugBashItemRejected;custom")
		assert.True(t, IsAccepted(got))
		assert.False(t, IsRejected(got))
		assert.True(t, HasTag(got, "custom"))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := ApplyAccepted("BugBash_123")
		twice := ApplyAccepted(once)
		assert.Equal(t, once, twice)
	})

	t.Run("works on empty tag field", func(t *testing.T) {
		assert.Equal(t, AcceptedTag, ApplyAccepted(""))
	})
}

func TestStripBashTags(t *testing.T) {
	got := StripBashTags("keepme;BugBash_123;BugBashItemAccepted;BugBashItemRejected", "123")
	assert.Equal(t, "keepme", got)

	t.Run("leaves other bash links alone", func(t *testing.T) {
		got := StripBashTags("BugBash_123;BugBash_456", "123")
		assert.Equal(t, "BugBash_456", got)
	})

	t.Run("empty result for pure linkage tags", func(t *testing.T) {
		assert.Equal(t, "", StripBashTags("BugBash_123;BugBashItemAccepted", "123"))
	})
}

func TestAddBashTag(t *testing.T) {
	assert.Equal(t, "BugBash_123", AddBashTag("", "123"))
	assert.Equal(t, "BugBash_123;existing", AddBashTag("existing", "123"))

	t.Run("no duplicate link tag", func(t *testing.T) {
		assert.Equal(t, "BugBash_123;x", AddBashTag("BugBash_123;x", "123"))
	})
}

func TestItemsQuery(t *testing.T) {
	bash := validBash()
	q := ItemsQuery("proj-1", bash)

	assert.Contains(t, q, "[System.TeamProject] = 'proj-1'")
	assert.Contains(t, q, "[System.WorkItemType] = 'Bug'")
	assert.Contains(t, q, "[System.Tags] CONTAINS 'BugBash_1700000000000'")
	assert.Contains(t, q, "ORDER BY [System.CreatedDate] DESC")

	t.Run("escapes embedded quotes", func(t *testing.T) {
		bash := validBash()
		bash.WorkItemType = "O'Bug"
		assert.Contains(t, ItemsQuery("p", bash), "'O''Bug'")
	})
}
