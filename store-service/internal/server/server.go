package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pagebound/bookstore/store-service/internal/config"
	"github.com/pagebound/bookstore/store-service/internal/domain/models"
	"github.com/pagebound/bookstore/store-service/internal/logger"
)

//go:generate mockgen -source=server.go -destination=./mocks/service_mock.go -package=mocks

type Storage interface {
	SaveBook(models.Book) (models.Book, error)
	GetBooks() ([]models.Book, error)
	GetBook(string) (models.Book, error)
	FindBookByTitle(string) (models.Book, error)
	UpdateBook(string, models.BookUpdate) (*models.Book, error)
	DeleteBook(string) error
	SaveOrder(models.Order) (models.Order, error)
	GetOrders() ([]models.Order, error)
	GetUserOrders(string) ([]models.Order, error)
}

type Server struct {
	serv    *http.Server
	valid   *validator.Validate
	Storage Storage
	ErrChan chan error
}

func New(cfg config.Config, stor Storage) *Server {
	server := http.Server{ //nolint:gosec // not today
		Addr: cfg.Addr,
	}
	valid := validator.New()
	return &Server{
		serv:    &server,
		valid:   valid,
		Storage: stor,
		ErrChan: make(chan error),
	}
}

func (s *Server) ShutdownServer() error {
	return s.serv.Shutdown(context.Background())
}

func (s *Server) Run(ctx context.Context) error {
	log := logger.Get()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	api := router.Group("/api")
	{
		api.POST("/books", s.AddBook)
		api.GET("/books", s.AllBooks)
		api.GET("/books/view/:title", s.BookByTitle)
		api.GET("/books/:id", s.BookInfo)
		api.PUT("/books/:id", s.UpdateBook)
		api.DELETE("/books/:id", s.RemoveBook)

		api.POST("/place-order", s.PlaceOrder)
		api.GET("/orders", s.AllOrders)
		api.GET("/orders/:user", s.UserOrders)
	}

	s.serv.Handler = router
	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Close() error {
	return s.serv.Shutdown(context.TODO())
}
