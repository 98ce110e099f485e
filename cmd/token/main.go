// Command token signs a bearer token for local testing. The service has no
// login endpoint; identities come from the upstream auth provider.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"motofinance/internal/domain/entities"
	"motofinance/internal/infrastructure/auth"
	"motofinance/internal/infrastructure/config"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	userID := flag.String("user", "", "user id")
	role := flag.String("role", string(entities.RoleStore), "admin, store or client")
	storeID := flag.String("store", "", "store id (store role only)")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	r := entities.Role(*role)
	if !r.Valid() {
		log.Fatalf("invalid role %q", *role)
	}
	if *userID == "" {
		log.Fatal("-user is required")
	}
	if r == entities.RoleStore && *storeID == "" {
		log.Fatal("-store is required for store users")
	}

	signer := auth.JWT{Secret: []byte(cfg.Auth.JWTSecret), TokenTTL: cfg.Auth.TokenTTL}
	token, expiresAt, err := signer.Sign(auth.Claims{UserID: *userID, Role: r, StoreID: *storeID})
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format("2006-01-02 15:04:05Z07:00"))
	fmt.Println(token)
}
