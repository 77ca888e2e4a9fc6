// Package admin submits new books to the store. Access is gated on the
// session's admin flag only.
package admin

import (
	"errors"
	"strings"

	"github.com/pagebound/bookstore/shop-client/internal/api"
	"github.com/pagebound/bookstore/shop-client/internal/domain/models"
	"github.com/pagebound/bookstore/shop-client/internal/logger"
	"github.com/pagebound/bookstore/shop-client/internal/session"
)

var (
	ErrAccessDenied  = errors.New("access denied")
	ErrMissingFields = errors.New("fill all fields")
)

type Panel struct {
	gate *session.Gate
	api  *api.Client
}

func New(gate *session.Gate, client *api.Client) *Panel {
	return &Panel{gate: gate, api: client}
}

// AddBook posts a new book. All five fields are required and the price must
// be a positive number.
func (p *Panel) AddBook(title, author string, price float64, image, desc string) (models.Book, error) {
	log := logger.Get()

	sess, err := p.gate.Current()
	if err != nil {
		return models.Book{}, err
	}
	if !sess.IsAdmin {
		return models.Book{}, ErrAccessDenied
	}

	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	image = strings.TrimSpace(image)
	desc = strings.TrimSpace(desc)
	if title == "" || author == "" || image == "" || desc == "" || price <= 0 {
		return models.Book{}, ErrMissingFields
	}

	book, err := p.api.CreateBook(api.BookInput{
		Title:       title,
		Author:      author,
		Price:       price,
		Description: desc,
		Image:       image,
	})
	if err != nil {
		return models.Book{}, err
	}
	log.Info().Str("book", book.ID).Str("admin", sess.Email).Msg("book added")
	return book, nil
}
