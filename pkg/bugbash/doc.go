// Package bugbash provides the entity model and linkage conventions for
// bug bash events: the BugBash configuration record, the editable
// double-buffer wrapper used by editor surfaces, and the tag encoding that
// relates a bash to the work items logged during it.
//
// The package is pure data and string manipulation. Store caches, action
// fan-out and collaborator access live under internal/; this package is the
// shared vocabulary between them.
package bugbash
