// Package cart manages the per-user cart stored under cart_<email>.
package cart

import (
	"errors"

	"github.com/pagebound/bookstore/shop-client/internal/api"
	"github.com/pagebound/bookstore/shop-client/internal/catalog"
	"github.com/pagebound/bookstore/shop-client/internal/domain/models"
	"github.com/pagebound/bookstore/shop-client/internal/localstore"
	"github.com/pagebound/bookstore/shop-client/internal/logger"
	"github.com/pagebound/bookstore/shop-client/internal/session"
)

var ErrEmptyCart = errors.New("your cart is empty")

type Manager struct {
	store   *localstore.Store
	catalog *catalog.Catalog
	gate    *session.Gate
	api     *api.Client
}

func New(store *localstore.Store, cat *catalog.Catalog, gate *session.Gate, client *api.Client) *Manager {
	return &Manager{store: store, catalog: cat, gate: gate, api: client}
}

func (m *Manager) load(email string) ([]models.CartItem, error) {
	var items []models.CartItem
	if _, err := m.store.GetJSON(localstore.CartKey(email), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (m *Manager) save(email string, items []models.CartItem) error {
	return m.store.PutJSON(localstore.CartKey(email), items)
}

// Items returns the logged-in user's cart lines.
func (m *Manager) Items() ([]models.CartItem, error) {
	sess, err := m.gate.Current()
	if err != nil {
		return nil, err
	}
	return m.load(sess.Email)
}

// Add resolves the book and either increments the matching line or appends a
// new one with quantity 1.
func (m *Manager) Add(bookID string) error {
	log := logger.Get()

	sess, err := m.gate.Current()
	if err != nil {
		return err
	}
	book, err := m.catalog.Find(bookID)
	if err != nil {
		return err
	}
	items, err := m.load(sess.Email)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == book.ID {
			if items[i].Qty < 1 {
				items[i].Qty = 1
			}
			items[i].Qty++
			return m.save(sess.Email, items)
		}
	}
	items = append(items, models.CartItem{
		ID:    book.ID,
		Title: book.Title,
		Price: book.Price,
		Img:   book.Img,
		Qty:   1,
	})
	log.Debug().Str("book", book.ID).Str("user", sess.Email).Msg("added to cart")
	return m.save(sess.Email, items)
}

// ChangeQty adjusts a line's quantity; the line is dropped when the result
// is zero or below.
func (m *Manager) ChangeQty(itemID string, delta int) error {
	sess, err := m.gate.Current()
	if err != nil {
		return err
	}
	items, err := m.load(sess.Email)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		if items[i].Qty < 1 {
			items[i].Qty = 1
		}
		items[i].Qty += delta
		if items[i].Qty <= 0 {
			items = append(items[:i], items[i+1:]...)
		}
		return m.save(sess.Email, items)
	}
	return nil
}

// Remove drops the matching line. It compares the legacy id field, while Add
// and ChangeQty key lines by _id; lines created by Add never set the legacy
// field, so the filter keeps everything.
func (m *Manager) Remove(itemID string) error {
	sess, err := m.gate.Current()
	if err != nil {
		return err
	}
	items, err := m.load(sess.Email)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.LegacyID != itemID {
			kept = append(kept, it)
		}
	}
	return m.save(sess.Email, kept)
}

// Total is the sum of price x quantity over all lines.
func (m *Manager) Total() (float64, error) {
	items, err := m.Items()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, it := range items {
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		total += it.Price * float64(qty)
	}
	return total, nil
}

// Count is the badge count: the sum of quantities.
func (m *Manager) Count() (int, error) {
	items, err := m.Items()
	if err != nil {
		return 0, err
	}
	var count int
	for _, it := range items {
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		count += qty
	}
	return count, nil
}

// Checkout posts the cart to the order service. The stored cart is cleared
// whether or not the order goes through.
func (m *Manager) Checkout() (string, error) {
	log := logger.Get()

	sess, err := m.gate.Current()
	if err != nil {
		return "", err
	}
	items, err := m.load(sess.Email)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	lines := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, models.OrderItem{
			BookID:   it.ID,
			Title:    it.Title,
			Price:    it.Price,
			Quantity: qty,
		})
	}

	orderID, err := m.api.PlaceOrder(sess.Email, lines)
	if clearErr := m.store.Delete(localstore.CartKey(sess.Email)); clearErr != nil {
		log.Error().Err(clearErr).Str("user", sess.Email).Msg("failed to clear cart")
	}
	if err != nil {
		return "", err
	}
	return orderID, nil
}
