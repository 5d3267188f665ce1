package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	bearer "github.com/solvera/go-bearer"
)

func main() {
	cfg := bearer.NewConfigFromEnv()

	if cfg.IsDefaultSigningKey() {
		log.Println("WARNING: JWT_SECRET is not set; tokens are signed with the built-in fallback key and are forgeable. Set JWT_SECRET before exposing this service.")
	}

	store := bearer.NewMemoryStore()
	if err := seedUsers(store); err != nil {
		log.Fatalf("unable to seed user store: %v", err)
	}

	provider := bearer.NewUserProvider(store)
	auther := bearer.NewAuthenticator(provider, cfg).
		WithActivitySink(bearer.LoggerActivitySink(nil))

	httpAuth, err := bearer.NewHTTPAuthenticator(auther, cfg)
	if err != nil {
		log.Fatalf("unable to build HTTP authenticator: %v", err)
	}

	controller := bearer.NewAuthController(
		bearer.WithAuthenticator(httpAuth),
		bearer.WithUserStore(store),
	)

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	bearer.RegisterAuthRoutes(srv.Router(), controller, cfg)

	addr := os.Getenv("AUTH_LISTEN_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	log.Printf("auth server listening on %s", addr)
	srv.Serve(addr)

	WaitExitSignal()
}

// seedUsers provisions demo identities. Hashing happens here so plaintext
// never leaves process startup; a real deployment swaps the store wholesale.
func seedUsers(store *bearer.MemoryStore) error {
	ctx := context.Background()

	username := os.Getenv("AUTH_SEED_USER")
	password := os.Getenv("AUTH_SEED_PASSWORD")
	if username == "" {
		username, password = "validUser", "validPassword"
	}

	if _, err := store.Register(ctx, username, password); err != nil {
		return err
	}

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
