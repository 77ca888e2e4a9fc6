package models

import "time"

// Book is the client-side catalog shape. Seeded demo books and normalized
// backend books both end up in this form.
type Book struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
	Img    string  `json:"img"`
	Desc   string  `json:"desc"`
}

// CartItem is one stored cart line. Lines are keyed by ID; LegacyID is an
// older field some code paths still compare against.
type CartItem struct {
	ID       string  `json:"_id"`
	LegacyID string  `json:"id,omitempty"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Img      string  `json:"img"`
	Qty      int     `json:"qty"`
}

type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Session is the logged-in marker payload.
type Session struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type OrderItem struct {
	BookID   string  `json:"bookId"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID        string      `json:"id"`
	User      string      `json:"user"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}
