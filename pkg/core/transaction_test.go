package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EagleStelle/InStelle/pkg/core"
)

func TestStore_WithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit Persists Once", func(t *testing.T) {
		repo := &MockRepository{}
		s := core.NewStore(repo)

		err := s.WithTransaction(ctx, func(tx *core.Tx) error {
			tab, err := tx.AddTab("📄")
			if err != nil {
				return err
			}
			if _, err := tx.AddNote(tab, "a", ""); err != nil {
				return err
			}
			_, err = tx.AddNote(tab, "b", "")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.Saves())
		require.Len(t, repo.Stored(), 1)
		assert.Len(t, repo.Stored()[0].Notes, 2)
	})

	t.Run("Rollback Restores Memory", func(t *testing.T) {
		assets := &MockAssets{}
		repo := &MockRepository{}
		s := core.NewStore(repo, core.WithAssets(assets))
		keep, _ := s.AddTab(ctx, "img:keep.png")
		n, _ := s.AddNote(ctx, keep, "original", "text")
		saves := repo.Saves()

		boom := errors.New("boom")
		err := s.WithTransaction(ctx, func(tx *core.Tx) error {
			if _, err := tx.AddTab("new"); err != nil {
				return err
			}
			if err := tx.UpdateNote(keep, n.ID, "changed", "changed"); err != nil {
				return err
			}
			if err := tx.EditTab(keep, "🐶"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, saves, repo.Saves())

		tabs := s.Tabs()
		require.Len(t, tabs, 1)
		assert.Same(t, keep, tabs[0])
		assert.Same(t, keep, s.ActiveTab())
		assert.Equal(t, "img:keep.png", keep.Icon)
		assert.Equal(t, "original", keep.Notes[0].Title)
		assert.Same(t, n, keep.Notes[0])
		assert.Empty(t, assets.removed)
	})

	t.Run("Tx Closed After Return", func(t *testing.T) {
		s := core.NewStore(&MockRepository{})
		var leaked *core.Tx
		require.NoError(t, s.WithTransaction(ctx, func(tx *core.Tx) error {
			leaked = tx
			return nil
		}))
		_, err := leaked.AddTab("x")
		assert.Error(t, err)
		assert.Empty(t, s.Tabs())
	})

	t.Run("Delete And Reorder", func(t *testing.T) {
		repo := &MockRepository{}
		s := core.NewStore(repo)
		tab, _ := s.AddTab(ctx, "📄")
		a, _ := s.AddNote(ctx, tab, "a", "")
		b, _ := s.AddNote(ctx, tab, "b", "")
		c, _ := s.AddNote(ctx, tab, "c", "")

		require.NoError(t, s.WithTransaction(ctx, func(tx *core.Tx) error {
			if err := tx.DeleteNote(tab, b.ID); err != nil {
				return err
			}
			return tx.ReorderNote(tab, c.ID, a.ID)
		}))
		assert.Equal(t, []string{"c", "a"}, noteTitles(repo.Stored()[0]))
	})
}
