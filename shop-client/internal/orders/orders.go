// Package orders renders a user's order history fetched from the store.
package orders

import (
	"fmt"
	"io"

	"github.com/pagebound/bookstore/shop-client/internal/api"
	"github.com/pagebound/bookstore/shop-client/internal/domain/models"
)

type Viewer struct {
	api *api.Client
}

func New(client *api.Client) *Viewer {
	return &Viewer{api: client}
}

// History returns the user's orders, newest first. A network failure is
// reported once to the caller; there is no retry.
func (v *Viewer) History(email string) ([]models.Order, error) {
	return v.api.UserOrders(email)
}

// Render writes the order cards in display form.
func (v *Viewer) Render(w io.Writer, orders []models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders found.")
		return
	}
	for _, order := range orders {
		fmt.Fprintf(w, "Order ID: %s\n", order.ID)
		fmt.Fprintf(w, "Date: %s\n", order.CreatedAt.Local().Format("02 Jan 2006 15:04"))
		for _, item := range order.Items {
			fmt.Fprintf(w, "  - %s: %.2f x %d\n", item.Title, item.Price, item.Quantity)
		}
		fmt.Fprintf(w, "Total: %.2f\n\n", order.Total)
	}
}
