package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pagebound/bookstore/store-service/internal/domain/consts"
	"github.com/pagebound/bookstore/store-service/internal/domain/models"
	"github.com/pagebound/bookstore/store-service/internal/logger"
	storerrors "github.com/pagebound/bookstore/store-service/internal/storage/errors"
)

type DBStorage struct {
	pool *pgxpool.Pool
}

func NewDB(ctx context.Context, addr string) (*DBStorage, error) {
	config, err := pgxpool.ParseConfig(addr)
	if err != nil {
		return nil, err
	}
	config.MaxConns = 20
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &DBStorage{pool: pool}, nil
}

func (dbs *DBStorage) SaveBook(book models.Book) (models.Book, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	book.BID = uuid.New().String()
	_, err := dbs.pool.Exec(ctx,
		`INSERT INTO books (bid, title, author, price, description, image)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		book.BID, book.Title, book.Author, book.Price, book.Description, book.Image)
	if err != nil {
		log.Error().Err(err).Msg("save book failed")
		return models.Book{}, err
	}
	return book, nil
}

func (dbs *DBStorage) GetBooks() ([]models.Book, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()
	rows, err := dbs.pool.Query(ctx, `SELECT bid, title, author, price, description, image FROM books`)
	if err != nil {
		log.Error().Err(err).Msg("failed get all books from db")
		return nil, err
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(&book.BID, &book.Title, &book.Author, &book.Price, &book.Description, &book.Image); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (dbs *DBStorage) GetBook(bid string) (models.Book, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()
	row := dbs.pool.QueryRow(ctx,
		`SELECT bid, title, author, price, description, image FROM books WHERE bid = $1`, bid)

	var book models.Book
	if err := row.Scan(&book.BID, &book.Title, &book.Author, &book.Price, &book.Description, &book.Image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Book{}, storerrors.ErrBookNoExist
		}
		log.Error().Err(err).Msg("failed to scan data from db")
		return models.Book{}, err
	}
	return book, nil
}

// FindBookByTitle returns the first book whose title contains the pattern,
// case-insensitively.
func (dbs *DBStorage) FindBookByTitle(title string) (models.Book, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()
	row := dbs.pool.QueryRow(ctx,
		`SELECT bid, title, author, price, description, image FROM books WHERE title ILIKE $1 LIMIT 1`,
		"%"+title+"%")

	var book models.Book
	if err := row.Scan(&book.BID, &book.Title, &book.Author, &book.Price, &book.Description, &book.Image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Book{}, storerrors.ErrBookNoExist
		}
		log.Error().Err(err).Msg("failed to scan data from db")
		return models.Book{}, err
	}
	return book, nil
}

// UpdateBook merges the set fields into the stored book and returns the result.
// A nonexistent bid is not an error: the returned book is nil, which callers
// pass through as-is.
func (dbs *DBStorage) UpdateBook(bid string, upd models.BookUpdate) (*models.Book, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	var sets []string
	var args []interface{}
	argPos := 1

	if upd.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argPos))
		args = append(args, *upd.Title)
		argPos++
	}
	if upd.Author != nil {
		sets = append(sets, fmt.Sprintf("author = $%d", argPos))
		args = append(args, *upd.Author)
		argPos++
	}
	if upd.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", argPos))
		args = append(args, *upd.Price)
		argPos++
	}
	if upd.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *upd.Description)
		argPos++
	}
	if upd.Image != nil {
		sets = append(sets, fmt.Sprintf("image = $%d", argPos))
		args = append(args, *upd.Image)
		argPos++
	}

	var row pgx.Row
	if len(sets) == 0 {
		row = dbs.pool.QueryRow(ctx,
			`SELECT bid, title, author, price, description, image FROM books WHERE bid = $1`, bid)
	} else {
		args = append(args, bid)
		query := fmt.Sprintf(
			`UPDATE books SET %s WHERE bid = $%d RETURNING bid, title, author, price, description, image`,
			strings.Join(sets, ", "), argPos)
		row = dbs.pool.QueryRow(ctx, query, args...)
	}

	var book models.Book
	if err := row.Scan(&book.BID, &book.Title, &book.Author, &book.Price, &book.Description, &book.Image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warn().Str("bid", bid).Msg("update of missing book")
			return nil, nil
		}
		log.Error().Err(err).Msg("failed to update book")
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes the book if present. Deleting an absent bid succeeds.
func (dbs *DBStorage) DeleteBook(bid string) error {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	res, err := dbs.pool.Exec(ctx, "DELETE FROM books WHERE bid = $1", bid)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete book")
		return err
	}
	if res.RowsAffected() == 0 {
		log.Warn().Str("bid", bid).Msg("book not found")
		return nil
	}
	log.Info().Str("bid", bid).Msg("book deleted successfully")
	return nil
}

func (dbs *DBStorage) SaveOrder(order models.Order) (models.Order, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	order.OID = uuid.New().String()
	order.CreatedAt = time.Now().UTC()

	items, err := json.Marshal(order.Items)
	if err != nil {
		return models.Order{}, err
	}
	_, err = dbs.pool.Exec(ctx,
		`INSERT INTO orders (oid, user_email, items, total, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		order.OID, order.User, items, order.Total, order.CreatedAt)
	if err != nil {
		log.Error().Err(err).Msg("save order failed")
		return models.Order{}, err
	}
	return order, nil
}

func (dbs *DBStorage) GetOrders() ([]models.Order, error) {
	return dbs.queryOrders(`SELECT oid, user_email, items, total, created_at
		FROM orders ORDER BY created_at DESC`)
}

func (dbs *DBStorage) GetUserOrders(user string) ([]models.Order, error) {
	return dbs.queryOrders(`SELECT oid, user_email, items, total, created_at
		FROM orders WHERE user_email = $1 ORDER BY created_at DESC`, user)
}

func (dbs *DBStorage) queryOrders(query string, args ...interface{}) ([]models.Order, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	rows, err := dbs.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders from db")
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var items []byte
		if err := rows.Scan(&order.OID, &order.User, &items, &order.Total, &order.CreatedAt); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			log.Error().Err(err).Str("oid", order.OID).Msg("failed to decode order items")
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func Migrations(dbDsn string, migrationsPath string) error {
	log := logger.Get()
	migratePath := fmt.Sprintf("file://%s", migrationsPath)
	m, err := migrate.New(migratePath, dbDsn)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no migrations apply")
			return nil
		}
		return err
	}
	log.Info().Msg("all migrations apply")
	return nil
}
