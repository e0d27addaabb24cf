package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func timedBash(id string, start, end *time.Time) *bugbash.BugBash {
	return &bugbash.BugBash{ID: id, Title: id, StartTime: start, EndTime: end}
}

func ts(daysFromNow int) *time.Time {
	t := now.AddDate(0, 0, daysFromNow)
	return &t
}

func TestSchedule(t *testing.T) {
	cases := map[string]struct {
		start, end *time.Time
		want       ScheduleBucket
	}{
		"no bounds is always current":        {nil, nil, BucketCurrent},
		"ended yesterday is past":            {ts(-10), ts(-1), BucketPast},
		"spanning now is current":            {ts(-1), ts(1), BucketCurrent},
		"starting tomorrow is upcoming":      {ts(1), nil, BucketUpcoming},
		"only future end is current":         {nil, ts(3), BucketCurrent},
		"only past end is past":              {nil, ts(-3), BucketPast},
		"only past start is current":         {ts(-3), nil, BucketCurrent},
		"future window is upcoming":          {ts(1), ts(2), BucketUpcoming},
		"window closing exactly now is past": {ts(-1), &now, BucketPast},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b := timedBash("x", tc.start, tc.end)
			assert.Equal(t, tc.want, Schedule(b, now))
		})
	}
}

func TestPartitionBugBashes(t *testing.T) {
	past, current, upcoming := PartitionBugBashes([]*bugbash.BugBash{
		timedBash("past", ts(-10), ts(-1)),
		timedBash("current", ts(-1), ts(1)),
		timedBash("upcoming", ts(1), nil),
		timedBash("always", nil, nil),
	}, now)

	assert.Len(t, past, 1)
	assert.Len(t, current, 2)
	assert.Len(t, upcoming, 1)
}

func item(id int, fields map[string]string) *bugbash.WorkItem {
	return &bugbash.WorkItem{ID: id, Rev: 1, Fields: fields}
}

func TestItemStatusAndPartition(t *testing.T) {
	accepted := item(1, map[string]string{bugbash.FieldTags: "BugBash_123;BugBashItemAccepted"})
	rejected := item(2, map[string]string{bugbash.FieldTags: "BugBash_123;BugBashItemRejected"})
	pending := item(3, map[string]string{bugbash.FieldTags: "BugBash_123"})

	assert.Equal(t, StatusAccepted, ItemStatus(accepted))
	assert.Equal(t, StatusRejected, ItemStatus(rejected))
	assert.Equal(t, StatusPending, ItemStatus(pending))

	a, r, p := PartitionWorkItems([]*bugbash.WorkItem{accepted, rejected, pending})
	assert.Equal(t, []*bugbash.WorkItem{accepted}, a)
	assert.Equal(t, []*bugbash.WorkItem{rejected}, r)
	assert.Equal(t, []*bugbash.WorkItem{pending}, p)
}

func TestSortWorkItems(t *testing.T) {
	items := []*bugbash.WorkItem{
		item(20, map[string]string{bugbash.FieldTitle: "beta", bugbash.FieldCreatedDate: "2024-06-02T00:00:00Z"}),
		item(3, map[string]string{bugbash.FieldTitle: "Alpha", bugbash.FieldCreatedDate: "2024-06-03T00:00:00Z"}),
		item(100, map[string]string{bugbash.FieldTitle: "gamma", bugbash.FieldCreatedDate: "2024-06-01T00:00:00Z"}),
	}

	t.Run("numeric id ascending", func(t *testing.T) {
		sorted := SortWorkItems(items, ColumnID, false)
		assert.Equal(t, []int{3, 20, 100}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	})

	t.Run("case-insensitive title descending", func(t *testing.T) {
		sorted := SortWorkItems(items, bugbash.FieldTitle, true)
		assert.Equal(t, "gamma", sorted[0].Title())
		assert.Equal(t, "Alpha", sorted[2].Title())
	})

	t.Run("created date ascending", func(t *testing.T) {
		sorted := SortWorkItems(items, bugbash.FieldCreatedDate, false)
		assert.Equal(t, 100, sorted[0].ID)
		assert.Equal(t, 3, sorted[2].ID)
	})

	t.Run("input untouched", func(t *testing.T) {
		SortWorkItems(items, ColumnID, false)
		assert.Equal(t, 20, items[0].ID)
	})
}

func TestFilterWorkItems(t *testing.T) {
	items := []*bugbash.WorkItem{
		item(1, map[string]string{
			bugbash.FieldTitle:      "login broken",
			bugbash.FieldState:      "New",
			bugbash.FieldAssignedTo: "Dana",
			bugbash.FieldTags:       "BugBash_123;BugBashItemAccepted",
		}),
		item(2, map[string]string{
			bugbash.FieldTitle:     "crash on save",
			bugbash.FieldState:     "Active",
			bugbash.FieldCreatedBy: "Robin",
			bugbash.FieldAreaPath:  "Product\\Web",
		}),
	}

	t.Run("empty text keeps everything", func(t *testing.T) {
		assert.Len(t, FilterWorkItems(items, "  "), 2)
	})

	t.Run("matches title case-insensitively", func(t *testing.T) {
		got := FilterWorkItems(items, "LOGIN")
		assert.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID)
	})

	t.Run("matches id, assignee, creator, area path", func(t *testing.T) {
		assert.Len(t, FilterWorkItems(items, "2"), 1)
		assert.Len(t, FilterWorkItems(items, "dana"), 1)
		assert.Len(t, FilterWorkItems(items, "robin"), 1)
		assert.Len(t, FilterWorkItems(items, "web"), 1)
	})

	t.Run("matches derived status label", func(t *testing.T) {
		got := FilterWorkItems(items, "accepted")
		assert.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID)

		assert.Len(t, FilterWorkItems(items, "pending"), 1)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		assert.Empty(t, FilterWorkItems(items, "zzz"))
	})
}

func TestSortBugBashes(t *testing.T) {
	bashes := []*bugbash.BugBash{
		{ID: "1700000000002", Title: "beta", StartTime: ts(2)},
		{ID: "1700000000001", Title: "Alpha", StartTime: ts(1)},
		{ID: "1700000000003", Title: "gamma"},
	}

	t.Run("timestamp ids sort numerically", func(t *testing.T) {
		sorted := SortBugBashes(bashes, "id", false)
		assert.Equal(t, "1700000000001", sorted[0].ID)
	})

	t.Run("title descending", func(t *testing.T) {
		sorted := SortBugBashes(bashes, BashColumnTitle, true)
		assert.Equal(t, "gamma", sorted[0].Title)
	})

	t.Run("unset start times order first", func(t *testing.T) {
		sorted := SortBugBashes(bashes, BashColumnStart, false)
		assert.Equal(t, "gamma", sorted[0].Title)
	})
}
