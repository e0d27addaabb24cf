package wit

import "fmt"

// JSON patch document bodies for work item writes, in the tracking
// system's wire form: a list of op/path/value operations against
// "/fields/{referenceName}", with an optional "test" op on "/rev" for
// optimistic concurrency.

// PatchOp is one JSON patch operation.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// PatchDocument is an ordered list of patch operations.
type PatchDocument []PatchOp

// FieldPatch builds a patch setting every field in the bag. Map iteration
// order is irrelevant to the service, so no ordering is imposed.
func FieldPatch(fields map[string]string) PatchDocument {
	doc := make(PatchDocument, 0, len(fields))
	for ref, value := range fields {
		doc = append(doc, PatchOp{
			Op:    "add",
			Path:  fmt.Sprintf("/fields/%s", ref),
			Value: value,
		})
	}
	return doc
}

// TagPatch builds a patch replacing only the tag field.
func TagPatch(tags string) PatchDocument {
	return FieldPatch(map[string]string{"System.Tags": tags})
}

// WithRevGuard prepends the revision test so the service rejects the write
// when the item has moved on since it was read.
func (d PatchDocument) WithRevGuard(rev int) PatchDocument {
	guard := PatchOp{Op: "test", Path: "/rev", Value: rev}
	return append(PatchDocument{guard}, d...)
}
