package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/techstore/backend/internal/cart"
	"github.com/techstore/backend/internal/cart/storage"
	"github.com/techstore/backend/internal/catalog"
	"github.com/techstore/backend/pkg/config"
	"github.com/techstore/backend/pkg/events"
	"github.com/techstore/backend/pkg/kv"
	"github.com/techstore/backend/pkg/logger"
)

const usage = `usage: storefront <command> [flags]

commands:
  categories                      list catalog categories
  browse [-category c] [-q term] [-bucket key]
                                  browse products
  add <product-id>                add a product to the local cart
  cart                            show the local cart
  remove <product-id>             remove a line from the cart
  clear                           empty the cart
  theme [light|dark]              show or set the theme preference
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	app := &app{cfg: cfg, logg: logg}
	if err := app.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		logg.Error(context.Background(), "command failed", err)
		os.Exit(1)
	}
}

type app struct {
	cfg  *config.Config
	logg *logger.Logger
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "categories":
		return a.categories(ctx)
	case "browse":
		return a.browse(ctx, args)
	case "add":
		return a.add(ctx, args)
	case "cart":
		return a.showCart(ctx)
	case "remove":
		return a.remove(ctx, args)
	case "clear":
		return a.clear(ctx)
	case "theme":
		return a.theme(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) client() *catalog.Client {
	return catalog.NewClient(a.cfg.Proxy.BaseURL, a.cfg.Proxy.Timeout)
}

func (a *app) openStore(ctx context.Context) (kv.Store, error) {
	switch a.cfg.Storage.Driver {
	case config.StorageDriverRedis:
		return kv.NewRedisStore(ctx, a.cfg.Redis)
	case config.StorageDriverSQLite:
		return kv.NewSQLiteStore(a.cfg.Storage.SQLitePath)
	default:
		return kv.NewMemoryStore(), nil
	}
}

func (a *app) openCart(ctx context.Context) (*cart.Store, kv.Store, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	adapter := storage.NewAdapter(store, a.cfg.Storage.CartKey, a.logg)
	return cart.NewStore(ctx, adapter), store, nil
}

func (a *app) categories(ctx context.Context) error {
	categories, err := a.client().Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Println(c)
	}
	return nil
}

func (a *app) browse(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	category := fs.String("category", "", "scope to a category")
	term := fs.String("q", "", "free-text search term")
	bucket := fs.String("bucket", "", "price bucket key (e.g. under-50)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	browser := catalog.NewBrowser(a.client(), catalog.DefaultLimit)
	if *category != "" {
		browser.SetCategory(category)
	}
	browser.SetSearchTerm(*term)
	if err := browser.Refresh(ctx); err != nil {
		return err
	}
	if *bucket != "" {
		browser.SelectBucket(bucket)
	}

	for _, p := range browser.Visible() {
		fmt.Printf("%-6d $%-9.2f %s\n", p.ID, p.Price, p.Title)
	}
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("add expects exactly one product id")
	}
	var id int
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("product id must be numeric: %w", err)
	}

	product, err := a.client().Product(ctx, id)
	if err != nil {
		return err
	}

	cartStore, store, err := a.openCart(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := events.NewBus()
	defer bus.Close()
	if err := cartStore.Run(runCtx, bus); err != nil {
		return err
	}

	before := cartStore.Count()
	if err := bus.PublishAddToCart(ctx, events.AddToCart{
		ID:    product.ID,
		Title: product.Title,
		Price: product.Price,
		Image: product.Image,
	}); err != nil {
		return err
	}

	deadline := time.Now().Add(2 * time.Second)
	for cartStore.Count() == before && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if cartStore.Count() == before {
		return fmt.Errorf("add event was never processed")
	}

	fmt.Printf("added %q, cart now holds %d item(s)\n", product.Title, cartStore.Count())
	return nil
}

func (a *app) showCart(ctx context.Context) error {
	cartStore, store, err := a.openCart(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	lines := cartStore.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, line := range lines {
		fmt.Printf("%-6d %dx $%-9.2f %s\n", line.ID, line.Qty, line.Price, line.Title)
	}
	fmt.Printf("total: $%s (%d items)\n", cartStore.Total().StringFixed(2), cartStore.Count())
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("remove expects exactly one product id")
	}
	var id int
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("product id must be numeric: %w", err)
	}

	cartStore, store, err := a.openCart(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	cartStore.Remove(ctx, id)
	fmt.Printf("cart now holds %d item(s)\n", cartStore.Count())
	return nil
}

func (a *app) clear(ctx context.Context) error {
	cartStore, store, err := a.openCart(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	cartStore.Clear(ctx)
	fmt.Println("cart cleared")
	return nil
}

func (a *app) theme(ctx context.Context, args []string) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	prefs := storage.NewPrefs(store, a.cfg.Storage.ThemeKey, a.logg)
	if len(args) == 0 {
		if prefs.LightMode(ctx) {
			fmt.Println("light")
		} else {
			fmt.Println("dark")
		}
		return nil
	}
	switch args[0] {
	case "light":
		prefs.SetLightMode(ctx, true)
	case "dark":
		prefs.SetLightMode(ctx, false)
	default:
		return fmt.Errorf("theme must be light or dark")
	}
	return nil
}
