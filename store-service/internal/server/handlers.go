package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pagebound/bookstore/store-service/internal/domain/models"
	"github.com/pagebound/bookstore/store-service/internal/logger"
	storerrors "github.com/pagebound/bookstore/store-service/internal/storage/errors"
)

type bookRequest struct {
	Title       string   `json:"title" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"required"`
}

func (s *Server) AddBook(ctx *gin.Context) {
	log := logger.Get()

	var req bookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid book payload"})
		return
	}
	if err := s.valid.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := s.Storage.SaveBook(models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Price:       *req.Price,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		log.Error().Err(err).Msg("save book failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save book"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Book added successfully", "book": book})
}

func (s *Server) AllBooks(ctx *gin.Context) {
	log := logger.Get()

	books, err := s.Storage.GetBooks()
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch books")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch books"})
		return
	}
	if books == nil {
		books = []models.Book{}
	}

	ctx.JSON(http.StatusOK, books)
}

func (s *Server) BookInfo(ctx *gin.Context) {
	log := logger.Get()

	id := ctx.Param("id")
	book, err := s.Storage.GetBook(id)
	if err != nil {
		if errors.Is(err, storerrors.ErrBookNoExist) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
			return
		}
		log.Error().Err(err).Str("bid", id).Msg("failed to fetch book")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch book"})
		return
	}
	ctx.JSON(http.StatusOK, book)
}

func (s *Server) BookByTitle(ctx *gin.Context) {
	log := logger.Get()

	title := ctx.Param("title")
	book, err := s.Storage.FindBookByTitle(title)
	if err != nil {
		if errors.Is(err, storerrors.ErrBookNoExist) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
			return
		}
		log.Error().Err(err).Str("title", title).Msg("failed to fetch book by title")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch book"})
		return
	}
	ctx.JSON(http.StatusOK, book)
}

// UpdateBook merges the submitted fields into the stored book. A nonexistent
// id still answers 200 with a null book, matching the historical behavior.
func (s *Server) UpdateBook(ctx *gin.Context) {
	log := logger.Get()

	id := ctx.Param("id")
	var upd models.BookUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid book payload"})
		return
	}

	book, err := s.Storage.UpdateBook(id, upd)
	if err != nil {
		log.Error().Err(err).Str("bid", id).Msg("failed to update book")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to update book"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Book updated", "book": book})
}

// RemoveBook deletes by id. Removal of an absent id is a success.
func (s *Server) RemoveBook(ctx *gin.Context) {
	log := logger.Get()

	id := ctx.Param("id")
	if err := s.Storage.DeleteBook(id); err != nil {
		log.Error().Err(err).Str("bid", id).Msg("failed to delete book")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete book"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}
