package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pagebound/bookstore/shop-client/internal/admin"
	"github.com/pagebound/bookstore/shop-client/internal/api"
	"github.com/pagebound/bookstore/shop-client/internal/cart"
	"github.com/pagebound/bookstore/shop-client/internal/catalog"
	"github.com/pagebound/bookstore/shop-client/internal/config"
	"github.com/pagebound/bookstore/shop-client/internal/localstore"
	"github.com/pagebound/bookstore/shop-client/internal/logger"
	"github.com/pagebound/bookstore/shop-client/internal/orders"
	"github.com/pagebound/bookstore/shop-client/internal/session"
)

const usage = `usage: shop-client [flags] <command> [args]

commands:
  register <name> <email> <password>
  login <email> <password>
  logout
  catalog
  view <book-id>
  add <book-id>
  cart
  qty <item-id> <delta>
  remove <item-id>
  checkout
  orders
  admin-add <title> <author> <price> <image> <description>
`

// publicCommands need no login marker; everything else is gated.
var publicCommands = map[string]bool{
	"register": true,
	"login":    true,
}

func main() {
	cfg, args := config.ReadConfig()
	log := logger.Get(cfg.Debug)
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	store, err := localstore.Open(cfg.StorePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open local store")
	}
	defer store.Close()

	client := api.New(cfg.APIBase)
	gate := session.New(store)
	cat := catalog.New(store, client)
	basket := cart.New(store, cat, gate, client)
	viewer := orders.New(client)
	panel := admin.New(gate, client)

	if err := cat.Seed(); err != nil {
		log.Fatal().Err(err).Msg("failed to seed catalog")
	}

	command, operands := args[0], args[1:]
	if !publicCommands[command] {
		if _, err := gate.Current(); err != nil {
			fmt.Println("Please login")
			os.Exit(1)
		}
	}

	if err := run(command, operands, gate, cat, basket, viewer, panel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(command string, args []string, gate *session.Gate, cat *catalog.Catalog,
	basket *cart.Manager, viewer *orders.Viewer, panel *admin.Panel) error {
	switch command {
	case "register":
		if len(args) != 3 {
			return errors.New("register needs <name> <email> <password>")
		}
		if err := gate.Register(args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("Registered! Please login.")
		return nil

	case "login":
		if len(args) != 2 {
			return errors.New("login needs <email> <password>")
		}
		sess, err := gate.Login(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Login successful, welcome %s\n", sess.Name)
		return nil

	case "logout":
		if err := gate.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil

	case "catalog":
		books, err := cat.Books()
		if err != nil {
			return err
		}
		for _, b := range books {
			fmt.Printf("%s  %s by %s  %.2f\n", b.ID, b.Title, b.Author, b.Price)
		}
		return nil

	case "view":
		if len(args) != 1 {
			return errors.New("view needs <book-id>")
		}
		book, err := cat.Find(args[0])
		if err != nil {
			return err
		}
		if err := cat.MarkViewed(book.ID); err != nil {
			return err
		}
		fmt.Printf("%s\nAuthor: %s\nPrice: %.2f\n%s\n", book.Title, book.Author, book.Price, book.Desc)
		return nil

	case "add":
		if len(args) != 1 {
			return errors.New("add needs <book-id>")
		}
		if err := basket.Add(args[0]); err != nil {
			return err
		}
		fmt.Println("Added to cart")
		return nil

	case "cart":
		items, err := basket.Items()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Your cart is empty.")
			return nil
		}
		for _, it := range items {
			fmt.Printf("%s  %s  %.2f x %d\n", it.ID, it.Title, it.Price, it.Qty)
		}
		total, err := basket.Total()
		if err != nil {
			return err
		}
		fmt.Printf("Total: %.2f\n", total)
		return nil

	case "qty":
		if len(args) != 2 {
			return errors.New("qty needs <item-id> <delta>")
		}
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid delta: %w", err)
		}
		return basket.ChangeQty(args[0], delta)

	case "remove":
		if len(args) != 1 {
			return errors.New("remove needs <item-id>")
		}
		return basket.Remove(args[0])

	case "checkout":
		orderID, err := basket.Checkout()
		if err != nil {
			return fmt.Errorf("failed to place order: %w", err)
		}
		fmt.Printf("Order placed successfully! Order ID: %s\n", orderID)
		return nil

	case "orders":
		sess, err := gate.Current()
		if err != nil {
			return err
		}
		history, err := viewer.History(sess.Email)
		if err != nil {
			return err
		}
		viewer.Render(os.Stdout, history)
		return nil

	case "admin-add":
		if len(args) != 5 {
			return errors.New("admin-add needs <title> <author> <price> <image> <description>")
		}
		price, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		book, err := panel.AddBook(args[0], args[1], price, args[3], args[4])
		if err != nil {
			return err
		}
		fmt.Printf("Book added successfully: %s\n", book.ID)
		// refresh the listing so the new book is visible right away
		books, err := cat.Books()
		if err != nil {
			return err
		}
		for _, b := range books {
			fmt.Printf("%s  %s by %s  %.2f\n", b.ID, b.Title, b.Author, b.Price)
		}
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
