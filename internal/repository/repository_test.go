package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneul-jeong/todo-server/internal/model"
	"github.com/haneul-jeong/todo-server/internal/repository"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// testUserRepository exercises the UserRepository contract. Both backends
// must pass it.
func testUserRepository(t *testing.T, users repository.UserRepository) {
	ctx := context.Background()

	alice := model.User{
		Username:       "alice",
		PasswordDigest: "digest-1",
		CreatedAt:      1700000000000,
	}
	require.NoError(t, users.Create(ctx, alice))

	t.Run("duplicate username rejected", func(t *testing.T) {
		err := users.Create(ctx, alice)
		assert.ErrorIs(t, err, repository.ErrUserExists)
	})

	t.Run("get by username", func(t *testing.T) {
		got, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "digest-1", got.PasswordDigest)
		assert.Empty(t, got.Token)

		_, err = users.GetByUsername(ctx, "bob")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("set and resolve token", func(t *testing.T) {
		require.NoError(t, users.SetToken(ctx, "alice", "token-1"))

		got, err := users.GetByToken(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)

		_, err = users.GetByToken(ctx, "unknown-token")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("new token invalidates the previous one", func(t *testing.T) {
		require.NoError(t, users.SetToken(ctx, "alice", "token-2"))

		_, err := users.GetByToken(ctx, "token-1")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)

		got, err := users.GetByToken(ctx, "token-2")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("cleared token no longer resolves", func(t *testing.T) {
		require.NoError(t, users.SetToken(ctx, "alice", ""))

		_, err := users.GetByToken(ctx, "token-2")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("empty token never resolves", func(t *testing.T) {
		// A record without a session must not be matched by an empty bearer.
		_, err := users.GetByToken(ctx, "")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("set token for unknown user", func(t *testing.T) {
		err := users.SetToken(ctx, "bob", "token-3")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

// testTodoRepository exercises the TodoRepository contract.
func testTodoRepository(t *testing.T, todos repository.TodoRepository) {
	ctx := context.Background()

	t.Run("list before create is empty", func(t *testing.T) {
		list, err := todos.List(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	require.NoError(t, todos.CreateList(ctx, "alice"))
	require.NoError(t, todos.CreateList(ctx, "alice")) // idempotent

	first, err := todos.Append(ctx, "alice", model.Todo{
		Text: "buy milk", CreatedAt: 1, UpdatedAt: 1,
	})
	require.NoError(t, err)
	second, err := todos.Append(ctx, "alice", model.Todo{
		Text: "walk dog", Completed: true, CreatedAt: 2, UpdatedAt: 2,
	})
	require.NoError(t, err)

	t.Run("ids are unique and increasing", func(t *testing.T) {
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("list preserves append order", func(t *testing.T) {
		list, err := todos.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "buy milk", list[0].Text)
		assert.Equal(t, "walk dog", list[1].Text)
	})

	t.Run("update applies only patched fields", func(t *testing.T) {
		got, err := todos.Update(ctx, "alice", first.ID, model.TodoPatch{
			Completed: boolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, "buy milk", got.Text)
		assert.True(t, got.Completed)
		assert.GreaterOrEqual(t, got.UpdatedAt, first.UpdatedAt)

		got, err = todos.Update(ctx, "alice", first.ID, model.TodoPatch{
			Text: strPtr("buy oat milk"), Completed: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "buy oat milk", got.Text)
		assert.False(t, got.Completed)
	})

	t.Run("update unknown id", func(t *testing.T) {
		_, err := todos.Update(ctx, "alice", 99999, model.TodoPatch{Text: strPtr("x")})
		assert.ErrorIs(t, err, repository.ErrTodoNotFound)

		list, err := todos.List(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("clear completed preserves remaining order", func(t *testing.T) {
		removed, err := todos.ClearCompleted(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, removed) // only "walk dog" was completed

		list, err := todos.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "buy oat milk", list[0].Text)

		removed, err = todos.ClearCompleted(ctx, "alice")
		require.NoError(t, err)
		assert.Zero(t, removed) // second call is a no-op, still success
	})

	t.Run("delete then delete again", func(t *testing.T) {
		require.NoError(t, todos.Delete(ctx, "alice", first.ID))

		err := todos.Delete(ctx, "alice", first.ID)
		assert.ErrorIs(t, err, repository.ErrTodoNotFound)

		list, err := todos.List(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("lists are isolated per user", func(t *testing.T) {
		_, err := todos.Append(ctx, "bob", model.Todo{Text: "bob's task"})
		require.NoError(t, err)

		list, err := todos.List(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
