package book

import (
	"context"
	"testing"
	"time"

	"bookcatalog/internal/page"
	"bookcatalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo(t *testing.T) {
	pool := testutil.StartPostgres(t)
	repo := NewPostgresRepo(pool, 3*time.Second)
	ctx := context.Background()

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	hobbit, err := repo.Add(ctx, NewBook{Title: "The Hobbit", Author: "J.R.R. Tolkien", PubYear: 1937})
	require.NoError(t, err)
	assert.Positive(t, hobbit.ID)
	assert.False(t, hobbit.CreatedAt.IsZero())

	dune, err := repo.Add(ctx, NewBook{Title: "Dune", Author: "Frank Herbert", PubYear: 1965})
	require.NoError(t, err)

	all, err = repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{hobbit.ID, dune.ID}, ids(all))

	got, err := repo.GetByID(ctx, dune.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, 1965, got.PubYear)

	_, err = repo.GetByID(ctx, dune.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)

	// the query engine runs unchanged over what the repository returns
	p := Search(all, "tolkien", page.NewRequest(0, 10))
	assert.Equal(t, 1, p.Total)
}
