package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EagleStelle/InStelle/pkg/adapters/fs"
	"github.com/EagleStelle/InStelle/pkg/core"
)

func newStore(t *testing.T) *core.Store {
	t.Helper()
	return core.NewStore(fs.NewRepository(fs.Config{Dir: t.TempDir()}))
}

func TestTabByPosition(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	first, err := s.AddTab(ctx, "📄")
	require.NoError(t, err)
	second, err := s.AddTab(ctx, "⭐")
	require.NoError(t, err)

	got, err := tabByPosition(s, "1")
	require.NoError(t, err)
	assert.Same(t, first, got)

	got, err = tabByPosition(s, "2")
	require.NoError(t, err)
	assert.Same(t, second, got)

	for _, bad := range []string{"0", "-1", "3", "one", ""} {
		_, err := tabByPosition(s, bad)
		assert.Error(t, err, bad)
	}
}

func TestSelectTab(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := selectTab(s, "")
	assert.ErrorIs(t, err, core.ErrTabNotFound)

	first, err := s.AddTab(ctx, "📄")
	require.NoError(t, err)
	got, err := selectTab(s, "")
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestFindNote(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	a, err := s.AddTab(ctx, "📄")
	require.NoError(t, err)
	b, err := s.AddTab(ctx, "⭐")
	require.NoError(t, err)

	// Fixed IDs make prefixes predictable.
	require.NoError(t, s.WithTransaction(ctx, func(tx *core.Tx) error {
		if _, err := tx.AddNote(a, "one", ""); err != nil {
			return err
		}
		_, err := tx.AddNote(b, "two", "")
		return err
	}))
	a.Notes[0].ID = "abc-111"
	b.Notes[0].ID = "abd-222"

	tab, note, err := findNote(s, "abc-111")
	require.NoError(t, err)
	assert.Same(t, a, tab)
	assert.Equal(t, "one", note.Title)

	tab, note, err = findNote(s, "abd")
	require.NoError(t, err)
	assert.Same(t, b, tab)
	assert.Equal(t, "two", note.Title)

	_, _, err = findNote(s, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, _, err = findNote(s, "zzz")
	assert.ErrorIs(t, err, core.ErrNoteNotFound)

	_, _, err = findNote(s, "")
	assert.ErrorIs(t, err, core.ErrNoteNotFound)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("12345678-aaaa-bbbb"))
	assert.Equal(t, "abc", shortID("abc"))
}
