// Package nav encodes the panel's navigation state as a URL query tuple:
// an action plus an optional bug bash id. The host's history service only
// round-trips opaque query strings, so the codec lives here and recognises
// exactly the four panel actions.
package nav

import (
	"net/url"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// State is one history entry: where the panel is, and for edit/view, which
// bash it is looking at.
type State struct {
	Action string
	ID     string
}

// Parse decodes query values into a State. Unknown or missing actions fall
// back to the "all" view rather than failing; a dangling id without an
// action-that-needs-one is dropped.
func Parse(values url.Values) State {
	s := State{
		Action: values.Get("_a"),
		ID:     values.Get("id"),
	}

	switch s.Action {
	case bugbash.URLActionAll, bugbash.URLActionNew, bugbash.URLActionEdit, bugbash.URLActionView:
	default:
		s.Action = bugbash.URLActionAll
	}

	if !actionTakesID(s.Action) {
		s.ID = ""
	}
	return s
}

// Format encodes the state back into query values. Round-trip stable for
// any state Parse can produce.
func Format(s State) url.Values {
	values := url.Values{}
	values.Set("_a", s.Action)
	if actionTakesID(s.Action) && s.ID != "" {
		values.Set("id", s.ID)
	}
	return values
}

func actionTakesID(action string) bool {
	return action == bugbash.URLActionEdit || action == bugbash.URLActionView
}
