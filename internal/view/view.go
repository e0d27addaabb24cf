// Package view derives render-ready projections from store snapshots:
// schedule bucketing for bug bashes, accepted/rejected/pending partitions
// for work items, and the sort and free-text filter rules the list
// surfaces share. Everything here is pure and recomputed from scratch on
// each store-changed notification; there is no incremental diffing.
package view

import (
	"sort"
	"strconv"
	"strings"
	"time"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// ScheduleBucket classifies a bash against "now".
type ScheduleBucket int

const (
	// BucketPast: the bash ended before now.
	BucketPast ScheduleBucket = iota
	// BucketCurrent: now falls inside the bash's active window.
	BucketCurrent
	// BucketUpcoming: the bash starts after now.
	BucketUpcoming
)

// Schedule places a bash in its bucket. No start and no end means always
// current; only an end means current until it passes; only a start means
// current from then on.
func Schedule(b *bugbash.BugBash, now time.Time) ScheduleBucket {
	switch {
	case b.StartTime == nil && b.EndTime == nil:
		return BucketCurrent
	case b.StartTime == nil:
		if now.Before(*b.EndTime) {
			return BucketCurrent
		}
		return BucketPast
	case b.EndTime == nil:
		if now.Before(*b.StartTime) {
			return BucketUpcoming
		}
		return BucketCurrent
	default:
		if now.Before(*b.StartTime) {
			return BucketUpcoming
		}
		if now.Before(*b.EndTime) {
			return BucketCurrent
		}
		return BucketPast
	}
}

// PartitionBugBashes splits a collection into past, current and upcoming.
func PartitionBugBashes(bashes []*bugbash.BugBash, now time.Time) (past, current, upcoming []*bugbash.BugBash) {
	past, current, upcoming = []*bugbash.BugBash{}, []*bugbash.BugBash{}, []*bugbash.BugBash{}
	for _, b := range bashes {
		switch Schedule(b, now) {
		case BucketPast:
			past = append(past, b)
		case BucketCurrent:
			current = append(current, b)
		case BucketUpcoming:
			upcoming = append(upcoming, b)
		}
	}
	return past, current, upcoming
}

// TriageStatus is the derived accept/reject state of a work item.
type TriageStatus string

const (
	StatusAccepted TriageStatus = "Accepted"
	StatusRejected TriageStatus = "Rejected"
	StatusPending  TriageStatus = "Pending"
)

// ItemStatus derives the triage status from the item's tags.
func ItemStatus(item *bugbash.WorkItem) TriageStatus {
	switch {
	case bugbash.IsAccepted(item.Tags()):
		return StatusAccepted
	case bugbash.IsRejected(item.Tags()):
		return StatusRejected
	default:
		return StatusPending
	}
}

// PartitionWorkItems splits a result set by triage status.
func PartitionWorkItems(items []*bugbash.WorkItem) (accepted, rejected, pending []*bugbash.WorkItem) {
	accepted, rejected, pending = []*bugbash.WorkItem{}, []*bugbash.WorkItem{}, []*bugbash.WorkItem{}
	for _, item := range items {
		switch ItemStatus(item) {
		case StatusAccepted:
			accepted = append(accepted, item)
		case StatusRejected:
			rejected = append(rejected, item)
		default:
			pending = append(pending, item)
		}
	}
	return accepted, rejected, pending
}

// Sortable work item columns: the id pseudo-column sorts numerically,
// the created-date column by instant, everything else as
// case-insensitive text.
const (
	ColumnID = "ID"
)

// SortWorkItems returns a sorted copy; the input is untouched.
func SortWorkItems(items []*bugbash.WorkItem, column string, descending bool) []*bugbash.WorkItem {
	sorted := append([]*bugbash.WorkItem(nil), items...)

	less := func(a, b *bugbash.WorkItem) bool {
		switch {
		case strings.EqualFold(column, ColumnID):
			return a.ID < b.ID
		case strings.EqualFold(column, bugbash.FieldCreatedDate):
			return a.CreatedDate().Before(b.CreatedDate())
		default:
			return strings.ToLower(a.Field(column)) < strings.ToLower(b.Field(column))
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// FilterWorkItems keeps items whose id, title, state, assignee, creator,
// area path or derived status label contains the text,
// case-insensitively. Empty text keeps everything.
func FilterWorkItems(items []*bugbash.WorkItem, text string) []*bugbash.WorkItem {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return append([]*bugbash.WorkItem(nil), items...)
	}

	kept := []*bugbash.WorkItem{}
	for _, item := range items {
		haystacks := []string{
			item.IDString(),
			item.Title(),
			item.State(),
			item.AssignedTo(),
			item.CreatedBy(),
			item.AreaPath(),
			string(ItemStatus(item)),
		}
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				kept = append(kept, item)
				break
			}
		}
	}
	return kept
}

// Sortable bug bash columns.
const (
	BashColumnTitle = "Title"
	BashColumnStart = "StartTime"
	BashColumnEnd   = "EndTime"
)

// SortBugBashes returns a sorted copy; the input is untouched. Ids sort
// numerically when both parse (they are millisecond timestamps), falling
// back to case-insensitive text.
func SortBugBashes(bashes []*bugbash.BugBash, column string, descending bool) []*bugbash.BugBash {
	sorted := append([]*bugbash.BugBash(nil), bashes...)

	less := func(a, b *bugbash.BugBash) bool {
		switch {
		case strings.EqualFold(column, BashColumnTitle):
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case strings.EqualFold(column, BashColumnStart):
			return timeLess(a.StartTime, b.StartTime)
		case strings.EqualFold(column, BashColumnEnd):
			return timeLess(a.EndTime, b.EndTime)
		default:
			na, errA := strconv.ParseInt(a.ID, 10, 64)
			nb, errB := strconv.ParseInt(b.ID, 10, 64)
			if errA == nil && errB == nil {
				return na < nb
			}
			return strings.ToLower(a.ID) < strings.ToLower(b.ID)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// timeLess orders nil (unset) instants first.
func timeLess(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b != nil
	}
	return a.Before(*b)
}
