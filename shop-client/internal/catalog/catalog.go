// Package catalog reconciles the locally seeded book list with the remote
// store. The remote side is best effort: when the backend is unreachable the
// catalog degrades to seed-only data without retrying.
package catalog

import (
	"errors"

	"github.com/pagebound/bookstore/shop-client/internal/api"
	"github.com/pagebound/bookstore/shop-client/internal/domain/models"
	"github.com/pagebound/bookstore/shop-client/internal/localstore"
	"github.com/pagebound/bookstore/shop-client/internal/logger"
)

var ErrBookNotFound = errors.New("book not found")

type Catalog struct {
	store *localstore.Store
	api   *api.Client
}

func New(store *localstore.Store, client *api.Client) *Catalog {
	return &Catalog{store: store, api: client}
}

// Seed materializes the demo book list on first use. Subsequent calls are
// no-ops.
func (c *Catalog) Seed() error {
	data, err := c.store.Get(localstore.KeyProducts)
	if err != nil {
		return err
	}
	if data != nil {
		return nil
	}
	seed := []models.Book{
		{ID: "b1", Title: "The Great Adventure", Author: "A. Traveller", Price: 499, Img: "assets/books11.png", Desc: "A thrilling journey across unknown lands."},
		{ID: "b2", Title: "Science Wonders", Author: "Dr. Curie", Price: 699, Img: "assets/boooks2.jpeg", Desc: "Exploring the marvels of modern science."},
		{ID: "b3", Title: "Mystery Night", Author: "Noir Writer", Price: 349, Img: "assets/books3.png", Desc: "A gripping mystery that keeps you guessing."},
	}
	return c.store.PutJSON(localstore.KeyProducts, seed)
}

// Local returns the seeded list only.
func (c *Catalog) Local() ([]models.Book, error) {
	var books []models.Book
	if _, err := c.store.GetJSON(localstore.KeyProducts, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Books returns the union of the seeded list and the remote catalog.
func (c *Catalog) Books() ([]models.Book, error) {
	log := logger.Get()

	books, err := c.Local()
	if err != nil {
		return nil, err
	}
	remote, err := c.api.ListBooks()
	if err != nil {
		log.Debug().Err(err).Msg("no backend books loaded (server offline?)")
		return books, nil
	}
	return append(books, remote...), nil
}

// Find resolves a book by identifier, seed list first, then the remote
// catalog. It accepts both seed ids and store-assigned ids.
func (c *Catalog) Find(id string) (models.Book, error) {
	if id == "" {
		return models.Book{}, ErrBookNotFound
	}
	local, err := c.Local()
	if err != nil {
		return models.Book{}, err
	}
	for _, book := range local {
		if book.ID == id {
			return book, nil
		}
	}
	remote, err := c.api.ListBooks()
	if err != nil {
		return models.Book{}, ErrBookNotFound
	}
	for _, book := range remote {
		if book.ID == id {
			return book, nil
		}
	}
	return models.Book{}, ErrBookNotFound
}

// MarkViewed records the last opened book id.
func (c *Catalog) MarkViewed(id string) error {
	return c.store.Put(localstore.KeyLastBook, []byte(id))
}

// LastViewed returns the recorded id, empty if none.
func (c *Catalog) LastViewed() (string, error) {
	data, err := c.store.Get(localstore.KeyLastBook)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
