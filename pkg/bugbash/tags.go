package bugbash

import "strings"

// Tag linkage conventions
//
// A bug bash has no foreign-key list of its work items. Every work item
// created for a bash carries a synthesized tag "BugBash_<bashId>" in
// System.Tags, and triage outcome is encoded as a dedicated accept or
// reject tag. Tags are the only per-item metadata channel the tracking
// system queries without a custom field schema, so this encoding is the
// de-facto relational join. All encoding and decoding lives here; callers
// never assemble tag strings themselves.

const (
	// BashTagPrefix prefixes the per-bash link tag.
	BashTagPrefix = "BugBash_"

	// AcceptedTag marks a work item accepted during triage.
	AcceptedTag = "BugBashItemAccepted"

	// RejectedTag marks a work item rejected during triage.
	RejectedTag = "BugBashItemRejected"

	tagSeparator = ";"
)

// BashTag returns the link tag for the given bash id.
func BashTag(bashID string) string {
	return BashTagPrefix + bashID
}

// SplitTags splits a semicolon-delimited tag field into trimmed, non-empty
// tag values.
func SplitTags(tags string) []string {
	parts := strings.Split(tags, tagSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags renders tag values back into the semicolon-delimited field form.
func JoinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

// HasTag reports whether the tag field contains the value, matching the
// tracking system's case-insensitive tag semantics.
func HasTag(tags, value string) bool {
	for _, t := range SplitTags(tags) {
		if strings.EqualFold(t, value) {
			return true
		}
	}
	return false
}

// HasBashTag reports whether the tag field links the item to the bash.
func HasBashTag(tags, bashID string) bool {
	return HasTag(tags, BashTag(bashID))
}

// IsAccepted reports whether the tag field carries the accept marker.
func IsAccepted(tags string) bool {
	return HasTag(tags, AcceptedTag)
}

// IsRejected reports whether the tag field carries the reject marker.
func IsRejected(tags string) bool {
	return HasTag(tags, RejectedTag)
}

// ApplyAccepted returns the tag field with the accept marker present and
// any reject marker removed. Idempotent.
func ApplyAccepted(tags string) string {
	return applyOutcome(tags, AcceptedTag, RejectedTag)
}

// ApplyRejected returns the tag field with the reject marker present and
// any accept marker removed. Idempotent.
func ApplyRejected(tags string) string {
	return applyOutcome(tags, RejectedTag, AcceptedTag)
}

func applyOutcome(tags, add, remove string) string {
	out := make([]string, 0, 4)
	for _, t := range SplitTags(tags) {
		if strings.EqualFold(t, add) || strings.EqualFold(t, remove) {
			continue
		}
		out = append(out, t)
	}
	out = append(out, add)
	return JoinTags(out)
}

// StripBashTags returns the tag field with the bash link tag and both
// outcome markers removed, used when a work item is taken out of a bash.
func StripBashTags(tags, bashID string) string {
	link := BashTag(bashID)
	out := make([]string, 0, 4)
	for _, t := range SplitTags(tags) {
		if strings.EqualFold(t, link) || strings.EqualFold(t, AcceptedTag) || strings.EqualFold(t, RejectedTag) {
			continue
		}
		out = append(out, t)
	}
	return JoinTags(out)
}

// AddBashTag returns the tag field with the bash link tag prepended, used
// when creating a work item for a bash. Existing tags are preserved.
func AddBashTag(tags, bashID string) string {
	if HasBashTag(tags, bashID) {
		return JoinTags(SplitTags(tags))
	}
	return JoinTags(append([]string{BashTag(bashID)}, SplitTags(tags)...))
}
