package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/pagebound/bookstore/store-service/internal/domain/models"
	"github.com/pagebound/bookstore/store-service/internal/logger"
)

// orderItemRequest keeps the wire fields loosely typed: clients are not
// trusted to send clean numbers, only per-line price/quantity values that get
// coerced server-side.
type orderItemRequest struct {
	BookID   any `json:"bookId"`
	Title    any `json:"title"`
	Price    any `json:"price"`
	Quantity any `json:"quantity"`
}

// orderItemList accepts both a JSON array and a single bare item object.
type orderItemList []orderItemRequest

func (l *orderItemList) UnmarshalJSON(data []byte) error {
	var many []orderItemRequest
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one orderItemRequest
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = orderItemList{one}
	return nil
}

type orderRequest struct {
	User  string        `json:"user"`
	Items orderItemList `json:"items"`
}

// PlaceOrder accepts a cart snapshot, recomputes the total from the submitted
// line items and persists the order. Any client-submitted total is ignored.
func (s *Server) PlaceOrder(ctx *gin.Context) {
	log := logger.Get()

	var req orderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid order payload"})
		return
	}
	if req.User == "" || len(req.Items) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User and items are required"})
		return
	}

	var items []models.OrderItem
	var total float64
	for _, it := range req.Items {
		bookID := cast.ToString(it.BookID)
		if bookID == "" {
			continue
		}
		price := cast.ToFloat64(it.Price)
		quantity := cast.ToInt(it.Quantity)
		if quantity == 0 {
			quantity = 1
		}
		items = append(items, models.OrderItem{
			BookID:   bookID,
			Title:    cast.ToString(it.Title),
			Price:    price,
			Quantity: quantity,
		})
		total += price * float64(quantity)
	}
	if len(items) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No valid items to place order"})
		return
	}

	order, err := s.Storage.SaveOrder(models.Order{
		User:  req.User,
		Items: items,
		Total: total,
	})
	if err != nil {
		log.Error().Err(err).Str("user", req.User).Msg("order placement failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to place order"})
		return
	}

	log.Info().Str("oid", order.OID).Str("user", order.User).Float64("total", order.Total).Msg("order placed")
	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully!",
		"order":   order,
		"orderId": order.OID,
	})
}

func (s *Server) AllOrders(ctx *gin.Context) {
	log := logger.Get()

	orders, err := s.Storage.GetOrders()
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch orders")
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (s *Server) UserOrders(ctx *gin.Context) {
	log := logger.Get()

	user := ctx.Param("user")
	orders, err := s.Storage.GetUserOrders(user)
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("failed to fetch user orders")
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}
