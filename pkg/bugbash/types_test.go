package bugbash

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBash() *BugBash {
	return &BugBash{
		ID:           "1700000000000",
		Title:        "Sprint Bash",
		WorkItemType: "Bug",
		ManualFields: []string{FieldTitle},
		ProjectID:    "proj-1",
		TeamID:       "team-1",
		ETag:         1,
	}
}

func TestBugBashValidate(t *testing.T) {
	t.Run("valid bash passes", func(t *testing.T) {
		assert.NoError(t, validBash().Validate())
		assert.True(t, validBash().IsValid())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		b := validBash()
		b.Title = "   "
		err := b.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title is required")
	})

	t.Run("rejects title over 128 characters", func(t *testing.T) {
		b := validBash()
		b.Title = strings.Repeat("x", 129)
		assert.Error(t, b.Validate())

		b.Title = strings.Repeat("x", 128)
		assert.NoError(t, b.Validate())
	})

	t.Run("rejects empty work item type", func(t *testing.T) {
		b := validBash()
		b.WorkItemType = ""
		assert.Error(t, b.Validate())
	})

	t.Run("rejects empty manual fields", func(t *testing.T) {
		b := validBash()
		b.ManualFields = nil
		assert.Error(t, b.Validate())
	})

	t.Run("rejects start time at or after end time", func(t *testing.T) {
		b := validBash()
		start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
		end := start.Add(-time.Hour)
		b.StartTime = &start
		b.EndTime = &end
		assert.Error(t, b.Validate())

		b.EndTime = &start
		assert.Error(t, b.Validate(), "equal start and end is invalid")

		later := start.Add(time.Hour)
		b.EndTime = &later
		assert.NoError(t, b.Validate())
	})

	t.Run("times optional individually", func(t *testing.T) {
		b := validBash()
		start := time.Now()
		b.StartTime = &start
		assert.NoError(t, b.Validate())

		b.StartTime = nil
		b.EndTime = &start
		assert.NoError(t, b.Validate())
	})
}

func TestBugBashIsNew(t *testing.T) {
	assert.True(t, New().IsNew())
	assert.False(t, validBash().IsNew())
}

func TestBugBashClone(t *testing.T) {
	b := validBash()
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	b.StartTime = &start
	b.ConfigTemplates = map[TemplateKey]string{TemplateKeyAccept: "tpl-1"}

	c := b.Clone()
	c.ManualFields[0] = "System.Description"
	c.ConfigTemplates[TemplateKeyAccept] = "tpl-2"
	*c.StartTime = start.Add(time.Hour)

	assert.Equal(t, FieldTitle, b.ManualFields[0])
	assert.Equal(t, "tpl-1", b.ConfigTemplates[TemplateKeyAccept])
	assert.True(t, b.StartTime.Equal(start))
}

func TestWorkItemAccessors(t *testing.T) {
	wi := &WorkItem{
		ID:  42,
		Rev: 3,
		Fields: map[string]string{
			FieldTitle:       "broken login",
			FieldState:       "New",
			FieldCreatedDate: "2024-06-10T09:00:00Z",
		},
	}

	assert.Equal(t, "broken login", wi.Title())
	assert.Equal(t, "New", wi.State())
	assert.Equal(t, "42", wi.IDString())
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), wi.CreatedDate())
	assert.Equal(t, "", wi.AssignedTo())

	t.Run("malformed created date yields zero time", func(t *testing.T) {
		wi.Fields[FieldCreatedDate] = "yesterday"
		assert.True(t, wi.CreatedDate().IsZero())
	})
}
