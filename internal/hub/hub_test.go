package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

func TestActionFanOut(t *testing.T) {
	var a Action[int]
	var got []int

	a.Subscribe(func(v int) { got = append(got, v) })
	a.Subscribe(func(v int) { got = append(got, v*10) })

	a.Invoke(3)
	assert.ElementsMatch(t, []int{3, 30}, got)
}

func TestActionUnsubscribe(t *testing.T) {
	var a Action[string]
	calls := 0

	h := a.Subscribe(func(string) { calls++ })
	a.Invoke("x")
	a.Unsubscribe(h)
	a.Invoke("y")

	assert.Equal(t, 1, calls)
}

func TestActionInvokeWithoutListeners(t *testing.T) {
	var a Action[*bugbash.BugBash]
	assert.NotPanics(t, func() { a.Invoke(nil) })
}

func TestHubChannelsIndependent(t *testing.T) {
	h := New()
	added, deleted := 0, 0

	h.BugBashAdded.Subscribe(func(*bugbash.BugBash) { added++ })
	h.BugBashDeleted.Subscribe(func(*bugbash.BugBash) { deleted++ })

	h.BugBashAdded.Invoke(&bugbash.BugBash{ID: "1"})
	assert.Equal(t, 1, added)
	assert.Equal(t, 0, deleted)
}
