package models

import "time"

type Book struct {
	BID         string  `json:"id,omitempty"`
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image" validate:"required"`
}

// BookUpdate carries the fields of a partial update; a nil field is left as is.
type BookUpdate struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// OrderItem is a snapshot of one cart line at placement time. BookID is a weak
// reference: deleting the book later does not touch historical orders.
type OrderItem struct {
	BookID   string  `json:"bookId"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	OID       string      `json:"id,omitempty"`
	User      string      `json:"user"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}
