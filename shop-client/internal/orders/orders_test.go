package orders

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/bookstore/shop-client/internal/api"
	"github.com/pagebound/bookstore/shop-client/internal/domain/models"
)

func TestViewer_History(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/a@x.com", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"orders":[
			{"id":"o-2","user":"a@x.com","items":[{"bookId":"b1","title":"One","price":100,"quantity":2}],"total":200,"createdAt":"2026-08-30T10:00:00Z"},
			{"id":"o-1","user":"a@x.com","items":[],"total":50,"createdAt":"2026-08-29T10:00:00Z"}
		]}`))
	}))
	t.Cleanup(ts.Close)

	viewer := New(api.New(ts.URL))
	history, err := viewer.History("a@x.com")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "o-2", history[0].ID)
	assert.True(t, history[0].CreatedAt.After(history[1].CreatedAt))
}

func TestViewer_HistoryBackendDown(t *testing.T) {
	viewer := New(api.New("http://127.0.0.1:1"))
	_, err := viewer.History("a@x.com")
	assert.Error(t, err)
}

func TestViewer_Render(t *testing.T) {
	viewer := New(nil)

	var sb strings.Builder
	viewer.Render(&sb, nil)
	assert.Contains(t, sb.String(), "No orders found.")

	sb.Reset()
	viewer.Render(&sb, []models.Order{{
		ID:    "o-1",
		Items: []models.OrderItem{{Title: "One", Price: 100, Quantity: 2}},
		Total: 200,
	}})
	out := sb.String()
	assert.Contains(t, out, "Order ID: o-1")
	assert.Contains(t, out, "One: 100.00 x 2")
	assert.Contains(t, out, "Total: 200.00")
}
