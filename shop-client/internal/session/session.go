// Package session gates non-public surfaces on a logged-in marker in the
// local store. Passwords are kept in plain text and the marker is a locally
// signed token: this mirrors the product's registration scheme and is not a
// security boundary.
package session

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/pagebound/bookstore/shop-client/internal/domain/models"
	"github.com/pagebound/bookstore/shop-client/internal/localstore"
	"github.com/pagebound/bookstore/shop-client/internal/logger"
)

// AdminEmail is the sentinel address treated as the administrator.
const AdminEmail = "admin@bookstore.com"

var SecretKey = "VerySecurBookKey2000"

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrUserExists         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("fill all fields")
)

type Claims struct {
	jwt.RegisteredClaims
	Name    string
	IsAdmin bool
}

type Gate struct {
	store *localstore.Store
}

func New(store *localstore.Store) *Gate {
	return &Gate{store: store}
}

func (g *Gate) users() ([]models.User, error) {
	var users []models.User
	if _, err := g.store.GetJSON(localstore.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Register appends a new user. Email uniqueness is checked against the local
// list only.
func (g *Gate) Register(name, email, password string) error {
	log := logger.Get()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return ErrMissingFields
	}

	users, err := g.users()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == email {
			return ErrUserExists
		}
	}
	users = append(users, models.User{
		Name:     name,
		Email:    email,
		Password: password,
		IsAdmin:  email == AdminEmail,
	})
	if err := g.store.PutJSON(localstore.KeyUsers, users); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("user registered")
	return nil
}

// Login verifies the credentials and writes the logged-in marker.
func (g *Gate) Login(email, password string) (models.Session, error) {
	log := logger.Get()

	email = strings.ToLower(strings.TrimSpace(email))
	users, err := g.users()
	if err != nil {
		return models.Session{}, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			sess := models.Session{Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
			token, err := createToken(sess)
			if err != nil {
				return models.Session{}, err
			}
			if err := g.store.Put(localstore.KeySession, []byte(token)); err != nil {
				return models.Session{}, err
			}
			log.Info().Str("email", email).Msg("user logged in")
			return sess, nil
		}
	}
	return models.Session{}, ErrInvalidCredentials
}

// Current returns the session behind the logged-in marker, or ErrNotLoggedIn.
func (g *Gate) Current() (models.Session, error) {
	data, err := g.store.Get(localstore.KeySession)
	if err != nil {
		return models.Session{}, err
	}
	if data == nil {
		return models.Session{}, ErrNotLoggedIn
	}
	sess, err := validToken(string(data))
	if err != nil {
		return models.Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

// Logout clears the marker.
func (g *Gate) Logout() error {
	return g.store.Delete(localstore.KeySession)
}

func createToken(sess models.Session) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: sess.Email},
		Name:             sess.Name,
		IsAdmin:          sess.IsAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(SecretKey))
}

func validToken(tokenStr string) (models.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(SecretKey), nil
	})
	if err != nil || !token.Valid {
		return models.Session{}, ErrInvalidToken
	}
	return models.Session{
		Name:    claims.Name,
		Email:   claims.Subject,
		IsAdmin: claims.IsAdmin,
	}, nil
}
