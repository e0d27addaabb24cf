package nav

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

func TestParse(t *testing.T) {
	t.Run("recognised actions pass through", func(t *testing.T) {
		for _, action := range []string{
			bugbash.URLActionAll, bugbash.URLActionNew,
			bugbash.URLActionEdit, bugbash.URLActionView,
		} {
			got := Parse(url.Values{"_a": {action}})
			assert.Equal(t, action, got.Action)
		}
	})

	t.Run("unknown action falls back to all", func(t *testing.T) {
		got := Parse(url.Values{"_a": {"destroy"}})
		assert.Equal(t, bugbash.URLActionAll, got.Action)
	})

	t.Run("empty values yield the all view", func(t *testing.T) {
		got := Parse(url.Values{})
		assert.Equal(t, State{Action: bugbash.URLActionAll}, got)
	})

	t.Run("id kept only for edit and view", func(t *testing.T) {
		got := Parse(url.Values{"_a": {bugbash.URLActionEdit}, "id": {"1700"}})
		assert.Equal(t, "1700", got.ID)

		got = Parse(url.Values{"_a": {bugbash.URLActionNew}, "id": {"1700"}})
		assert.Equal(t, "", got.ID)
	})
}

func TestFormatRoundTrip(t *testing.T) {
	states := []State{
		{Action: bugbash.URLActionAll},
		{Action: bugbash.URLActionNew},
		{Action: bugbash.URLActionEdit, ID: "1700000000000"},
		{Action: bugbash.URLActionView, ID: "abc"},
	}

	for _, s := range states {
		assert.Equal(t, s, Parse(Format(s)))
	}
}
