package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/bugbash/internal/hub"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

func bash(id, title string) *bugbash.BugBash {
	return &bugbash.BugBash{
		ID:           id,
		Title:        title,
		WorkItemType: "Bug",
		ManualFields: []string{bugbash.FieldTitle},
	}
}

func TestBugBashStoreLoadedFlag(t *testing.T) {
	h := hub.New()
	s := NewBugBashStore(h)

	assert.False(t, s.IsLoaded(), "unloaded before any initialize")
	assert.Empty(t, s.GetAll())

	t.Run("loaded after empty initialize", func(t *testing.T) {
		h.InitializeBugBashes.Invoke([]*bugbash.BugBash{})
		assert.True(t, s.IsLoaded(), "fetched-empty is still loaded")
		assert.Empty(t, s.GetAll())
	})

	t.Run("stays loaded across item actions", func(t *testing.T) {
		h.BugBashAdded.Invoke(bash("1", "one"))
		h.BugBashUpdated.Invoke(bash("1", "one renamed"))
		h.BugBashDeleted.Invoke(bash("1", "one renamed"))
		assert.True(t, s.IsLoaded())
	})

	t.Run("clear resets to unloaded", func(t *testing.T) {
		h.ClearBugBashes.Invoke(struct{}{})
		assert.False(t, s.IsLoaded())
	})
}

func TestBugBashStoreNilInitialize(t *testing.T) {
	h := hub.New()
	s := NewBugBashStore(h)

	changed := 0
	s.AttachChanged(func() { changed++ })

	// Nil payload means "already loaded, nothing to apply": only notify.
	h.InitializeBugBashes.Invoke(nil)
	assert.False(t, s.IsLoaded())
	assert.Equal(t, 1, changed)
}

func TestBugBashStoreLookup(t *testing.T) {
	h := hub.New()
	s := NewBugBashStore(h)
	h.InitializeBugBashes.Invoke([]*bugbash.BugBash{bash("AbC", "one"), bash("2", "two")})

	t.Run("case-insensitive id match", func(t *testing.T) {
		require.NotNil(t, s.GetItem("abc"))
		assert.True(t, s.ItemExists("ABC"))
	})

	t.Run("missing id", func(t *testing.T) {
		assert.Nil(t, s.GetItem("nope"))
		assert.False(t, s.ItemExists("nope"))
	})

	t.Run("add upserts on matching id", func(t *testing.T) {
		h.BugBashAdded.Invoke(bash("ABC", "renamed"))
		assert.Len(t, s.GetAll(), 2)
		assert.Equal(t, "renamed", s.GetItem("abc").Title)
	})
}

func TestBugBashStoreRemove(t *testing.T) {
	h := hub.New()
	s := NewBugBashStore(h)

	t.Run("remove while unloaded is ignored", func(t *testing.T) {
		h.BugBashDeleted.Invoke(bash("1", "one"))
		assert.False(t, s.IsLoaded())
	})

	h.InitializeBugBashes.Invoke([]*bugbash.BugBash{bash("1", "one"), bash("2", "two")})
	h.BugBashDeleted.Invoke(bash("1", "one"))

	assert.Len(t, s.GetAll(), 1)
	assert.False(t, s.ItemExists("1"))
	assert.True(t, s.ItemExists("2"))
}

func TestBugBashStoreChangeNotification(t *testing.T) {
	h := hub.New()
	s := NewBugBashStore(h)

	changed := 0
	handle := s.AttachChanged(func() { changed++ })

	h.InitializeBugBashes.Invoke([]*bugbash.BugBash{bash("1", "one")})
	h.BugBashUpdated.Invoke(bash("1", "renamed"))
	h.ClearBugBashes.Invoke(struct{}{})
	assert.Equal(t, 3, changed, "one notification per mutating action")

	s.DetachChanged(handle)
	h.InitializeBugBashes.Invoke([]*bugbash.BugBash{})
	assert.Equal(t, 3, changed)
}

func TestBugBashStoreGeneration(t *testing.T) {
	h := hub.New()
	s := NewBugBashStore(h)

	gen := s.Generation()
	h.InitializeBugBashes.Invoke([]*bugbash.BugBash{})
	assert.Equal(t, gen, s.Generation(), "initialize does not bump generation")

	h.ClearBugBashes.Invoke(struct{}{})
	assert.Equal(t, gen+1, s.Generation())
}

func TestBugBashStoreSnapshotIsolation(t *testing.T) {
	h := hub.New()
	s := NewBugBashStore(h)
	h.InitializeBugBashes.Invoke([]*bugbash.BugBash{bash("1", "one")})

	snap := s.GetAll()
	h.BugBashAdded.Invoke(bash("2", "two"))
	assert.Len(t, snap, 1, "snapshot unaffected by later mutation")
}
