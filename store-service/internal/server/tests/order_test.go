package tests

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/pagebound/bookstore/store-service/internal/config"
	"github.com/pagebound/bookstore/store-service/internal/domain/models"
	"github.com/pagebound/bookstore/store-service/internal/server"
	"github.com/pagebound/bookstore/store-service/internal/server/mocks"
)

func placeOrder(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/place-order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestServer_placeOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mocks.NewMockStorage(ctrl)
	s := server.New(config.Config{Addr: ":5000"}, mockStorage)
	router := setupRouter(s)

	t.Run("total recomputed from coerced line items", func(t *testing.T) {
		var saved models.Order
		mockStorage.EXPECT().
			SaveOrder(gomock.Any()).
			DoAndReturn(func(o models.Order) (models.Order, error) {
				saved = o
				o.OID = "o-1"
				o.CreatedAt = time.Now().UTC()
				return o, nil
			})

		body := `{"user":"a@x.com","items":[
			{"bookId":"B1","title":"One","price":100,"quantity":2},
			{"bookId":"B2","title":"Two","price":"bad","quantity":0}
		],"total":99999}`
		w := placeOrder(router, body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Order placed successfully!")
		assert.Contains(t, w.Body.String(), "o-1")
		assert.Len(t, saved.Items, 2)
		// invalid price coerced to 0, zero quantity defaulted to 1
		assert.Equal(t, 200.0, saved.Total)
		assert.Equal(t, 0.0, saved.Items[1].Price)
		assert.Equal(t, 1, saved.Items[1].Quantity)
	})

	t.Run("single item object is wrapped", func(t *testing.T) {
		var saved models.Order
		mockStorage.EXPECT().
			SaveOrder(gomock.Any()).
			DoAndReturn(func(o models.Order) (models.Order, error) {
				saved = o
				o.OID = "o-2"
				return o, nil
			})

		body := `{"user":"a@x.com","items":{"bookId":"B1","title":"One","price":50,"quantity":3}}`
		w := placeOrder(router, body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, saved.Items, 1)
		assert.Equal(t, 150.0, saved.Total)
	})

	t.Run("items lacking a book reference are discarded", func(t *testing.T) {
		var saved models.Order
		mockStorage.EXPECT().
			SaveOrder(gomock.Any()).
			DoAndReturn(func(o models.Order) (models.Order, error) {
				saved = o
				return o, nil
			})

		body := `{"user":"a@x.com","items":[
			{"title":"ghost","price":500,"quantity":1},
			{"bookId":"B1","price":10,"quantity":1}
		]}`
		w := placeOrder(router, body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, saved.Items, 1)
		assert.Equal(t, "B1", saved.Items[0].BookID)
		assert.Equal(t, 10.0, saved.Total)
	})

	t.Run("missing user", func(t *testing.T) {
		w := placeOrder(router, `{"items":[{"bookId":"B1","price":10,"quantity":1}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "User and items are required")
	})

	t.Run("missing items", func(t *testing.T) {
		w := placeOrder(router, `{"user":"a@x.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "User and items are required")
	})

	t.Run("empty items", func(t *testing.T) {
		w := placeOrder(router, `{"user":"a@x.com","items":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no valid items", func(t *testing.T) {
		w := placeOrder(router, `{"user":"a@x.com","items":[{"title":"ghost","price":10}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No valid items to place order")
	})

	t.Run("persistence failure is sanitized", func(t *testing.T) {
		mockStorage.EXPECT().
			SaveOrder(gomock.Any()).
			Return(models.Order{}, errors.New("pq: connection refused"))

		w := placeOrder(router, `{"user":"a@x.com","items":[{"bookId":"B1","price":10,"quantity":1}]}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to place order")
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestServer_allOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mocks.NewMockStorage(ctrl)
	s := &server.Server{Storage: mockStorage}

	t.Run("success", func(t *testing.T) {
		orders := []models.Order{{OID: "o-2"}, {OID: "o-1"}}
		mockStorage.EXPECT().GetOrders().Return(orders, nil)

		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)

		s.AllOrders(ctx)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), "o-2")
	})

	t.Run("empty", func(t *testing.T) {
		mockStorage.EXPECT().GetOrders().Return(nil, nil)

		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)

		s.AllOrders(ctx)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"orders":[]`)
	})

	t.Run("internal error", func(t *testing.T) {
		mockStorage.EXPECT().GetOrders().Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)

		s.AllOrders(ctx)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db error")
	})
}

func TestServer_userOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mocks.NewMockStorage(ctrl)
	s := &server.Server{Storage: mockStorage}

	t.Run("filters by user", func(t *testing.T) {
		orders := []models.Order{{OID: "o-9", User: "a@x.com"}}
		mockStorage.EXPECT().GetUserOrders("a@x.com").Return(orders, nil)

		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Params = gin.Params{{Key: "user", Value: "a@x.com"}}

		s.UserOrders(ctx)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "o-9")
	})

	t.Run("internal error", func(t *testing.T) {
		mockStorage.EXPECT().GetUserOrders("a@x.com").Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Params = gin.Params{{Key: "user", Value: "a@x.com"}}

		s.UserOrders(ctx)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db error")
	})
}
