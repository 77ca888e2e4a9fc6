package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/bookstore/store-service/internal/domain/models"
	storerrors "github.com/pagebound/bookstore/store-service/internal/storage/errors"
)

func sampleBook() models.Book {
	return models.Book{
		Title:       "The Great Adventure",
		Author:      "A. Traveller",
		Price:       499,
		Description: "A thrilling journey across unknown lands.",
		Image:       "assets/books11.png",
	}
}

func TestMemStorage_SaveAndGetBook(t *testing.T) {
	ms := New()

	saved, err := ms.SaveBook(sampleBook())
	require.NoError(t, err)
	require.NotEmpty(t, saved.BID)

	got, err := ms.GetBook(saved.BID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = ms.GetBook("missing")
	assert.ErrorIs(t, err, storerrors.ErrBookNoExist)
}

func TestMemStorage_FindBookByTitle(t *testing.T) {
	ms := New()
	_, err := ms.SaveBook(sampleBook())
	require.NoError(t, err)

	for _, pattern := range []string{"great", "GREAT ADVENTURE", "Advent"} {
		book, err := ms.FindBookByTitle(pattern)
		require.NoError(t, err, "pattern %q", pattern)
		assert.Equal(t, "The Great Adventure", book.Title)
	}

	_, err = ms.FindBookByTitle("nonexistent")
	assert.ErrorIs(t, err, storerrors.ErrBookNoExist)
}

func TestMemStorage_UpdateBook(t *testing.T) {
	ms := New()
	saved, err := ms.SaveBook(sampleBook())
	require.NoError(t, err)

	title := "Renamed"
	price := 599.0
	updated, err := ms.UpdateBook(saved.BID, models.BookUpdate{Title: &title, Price: &price})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 599.0, updated.Price)
	assert.Equal(t, saved.Author, updated.Author)

	got, err := ms.GetBook(saved.BID)
	require.NoError(t, err)
	assert.Equal(t, *updated, got)
}

func TestMemStorage_UpdateMissingBook(t *testing.T) {
	ms := New()

	title := "Renamed"
	updated, err := ms.UpdateBook("missing", models.BookUpdate{Title: &title})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestMemStorage_DeleteBookIdempotent(t *testing.T) {
	ms := New()
	saved, err := ms.SaveBook(sampleBook())
	require.NoError(t, err)

	assert.NoError(t, ms.DeleteBook(saved.BID))
	assert.NoError(t, ms.DeleteBook(saved.BID))
	assert.NoError(t, ms.DeleteBook("never existed"))
}

func TestMemStorage_Orders(t *testing.T) {
	ms := New()

	first, err := ms.SaveOrder(models.Order{
		User:  "a@x.com",
		Items: []models.OrderItem{{BookID: "b1", Title: "One", Price: 100, Quantity: 2}},
		Total: 200,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.OID)
	require.False(t, first.CreatedAt.IsZero())

	_, err = ms.SaveOrder(models.Order{
		User:  "a@x.com",
		Items: []models.OrderItem{{BookID: "b2", Title: "Two", Price: 50, Quantity: 1}},
		Total: 50,
	})
	require.NoError(t, err)

	_, err = ms.SaveOrder(models.Order{User: "b@x.com", Total: 10})
	require.NoError(t, err)

	all, err := ms.GetOrders()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := ms.GetUserOrders("a@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, "a@x.com", o.User)
	}
	// newest first
	assert.False(t, mine[0].CreatedAt.Before(mine[1].CreatedAt))
}
