package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pagebound/bookstore/store-service/internal/domain/models"
	"github.com/pagebound/bookstore/store-service/internal/logger"
	storerrors "github.com/pagebound/bookstore/store-service/internal/storage/errors"
)

// MemStorage is the fallback used when the database is unreachable at boot.
type MemStorage struct {
	bookStor  map[string]models.Book
	orderStor map[string]models.Order
}

func New() *MemStorage {
	return &MemStorage{
		bookStor:  make(map[string]models.Book),
		orderStor: make(map[string]models.Order),
	}
}

func (ms *MemStorage) SaveBook(book models.Book) (models.Book, error) {
	book.BID = uuid.New().String()
	ms.bookStor[book.BID] = book
	return book, nil
}

func (ms *MemStorage) GetBooks() ([]models.Book, error) {
	books := make([]models.Book, 0, len(ms.bookStor))
	for _, book := range ms.bookStor {
		books = append(books, book)
	}
	return books, nil
}

func (ms *MemStorage) GetBook(bid string) (models.Book, error) {
	log := logger.Get()
	book, ok := ms.bookStor[bid]
	if !ok {
		log.Error().Str("bid", bid).Msg("book not found")
		return models.Book{}, storerrors.ErrBookNoExist
	}
	return book, nil
}

func (ms *MemStorage) FindBookByTitle(title string) (models.Book, error) {
	title = strings.ToLower(title)
	for _, book := range ms.bookStor {
		if strings.Contains(strings.ToLower(book.Title), title) {
			return book, nil
		}
	}
	return models.Book{}, storerrors.ErrBookNoExist
}

func (ms *MemStorage) UpdateBook(bid string, upd models.BookUpdate) (*models.Book, error) {
	log := logger.Get()
	book, ok := ms.bookStor[bid]
	if !ok {
		log.Warn().Str("bid", bid).Msg("update of missing book")
		return nil, nil
	}
	if upd.Title != nil {
		book.Title = *upd.Title
	}
	if upd.Author != nil {
		book.Author = *upd.Author
	}
	if upd.Price != nil {
		book.Price = *upd.Price
	}
	if upd.Description != nil {
		book.Description = *upd.Description
	}
	if upd.Image != nil {
		book.Image = *upd.Image
	}
	ms.bookStor[bid] = book
	return &book, nil
}

func (ms *MemStorage) DeleteBook(bid string) error {
	log := logger.Get()
	if _, exists := ms.bookStor[bid]; !exists {
		log.Warn().Str("bid", bid).Msg("book not found")
		return nil
	}
	delete(ms.bookStor, bid)
	log.Info().Str("bid", bid).Msg("book deleted successfully")
	return nil
}

func (ms *MemStorage) SaveOrder(order models.Order) (models.Order, error) {
	order.OID = uuid.New().String()
	order.CreatedAt = time.Now().UTC()
	ms.orderStor[order.OID] = order
	return order, nil
}

func (ms *MemStorage) GetOrders() ([]models.Order, error) {
	orders := make([]models.Order, 0, len(ms.orderStor))
	for _, order := range ms.orderStor {
		orders = append(orders, order)
	}
	sortOrdersDesc(orders)
	return orders, nil
}

func (ms *MemStorage) GetUserOrders(user string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range ms.orderStor {
		if order.User == user {
			orders = append(orders, order)
		}
	}
	sortOrdersDesc(orders)
	return orders, nil
}

func sortOrdersDesc(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
