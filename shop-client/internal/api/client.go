// Package api is the REST client for the store service.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/guonaihong/gout"

	"github.com/pagebound/bookstore/shop-client/internal/domain/models"
)

type Client struct {
	base string
}

func New(base string) *Client {
	return &Client{base: base}
}

// wireBook tolerates both backend field spellings and older payloads that
// used _id/img/desc.
type wireBook struct {
	ID          string  `json:"id"`
	AltID       string  `json:"_id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Img         string  `json:"img"`
	Description string  `json:"description"`
	Desc        string  `json:"desc"`
}

func normalizeBook(w wireBook) models.Book {
	book := models.Book{
		ID:     w.ID,
		Title:  w.Title,
		Author: w.Author,
		Price:  w.Price,
		Img:    w.Img,
		Desc:   w.Desc,
	}
	if book.ID == "" {
		book.ID = w.AltID
	}
	if book.Img == "" {
		book.Img = w.Image
	}
	if book.Desc == "" {
		book.Desc = w.Description
	}
	return book
}

func (c *Client) ListBooks() ([]models.Book, error) {
	var wire []wireBook
	var code int
	err := gout.GET(c.base + "/api/books").BindJSON(&wire).Code(&code).Do()
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("list books: unexpected status %d", code)
	}
	books := make([]models.Book, 0, len(wire))
	for _, w := range wire {
		books = append(books, normalizeBook(w))
	}
	return books, nil
}

type BookInput struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

type bookResponse struct {
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Book    wireBook `json:"book"`
}

func (c *Client) CreateBook(in BookInput) (models.Book, error) {
	var resp bookResponse
	var code int
	err := gout.POST(c.base + "/api/books").SetJSON(in).BindJSON(&resp).Code(&code).Do()
	if err != nil {
		return models.Book{}, err
	}
	if code != http.StatusCreated {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", code)
		}
		return models.Book{}, errors.New(msg)
	}
	return normalizeBook(resp.Book), nil
}

type orderResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Order   models.Order `json:"order"`
	OrderID string       `json:"orderId"`
}

// PlaceOrder posts a cart snapshot and returns the assigned order id. The
// server recomputes the authoritative total from the submitted lines.
func (c *Client) PlaceOrder(user string, items []models.OrderItem) (string, error) {
	var resp orderResponse
	var code int
	err := gout.POST(c.base + "/api/place-order").
		SetJSON(gout.H{"user": user, "items": items}).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		return "", err
	}
	if code != http.StatusCreated || !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", code)
		}
		return "", errors.New(msg)
	}
	return resp.OrderID, nil
}

type ordersResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Orders  []models.Order `json:"orders"`
}

func (c *Client) UserOrders(email string) ([]models.Order, error) {
	var resp ordersResponse
	var code int
	err := gout.GET(c.base + "/api/orders/" + url.PathEscape(email)).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK || !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", code)
		}
		return nil, errors.New(msg)
	}
	return resp.Orders, nil
}
