package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/platform/auth/token"
)

// Tiny dev-only credential minter.
//
// It signs the same HS256 token the API issues on login, so a local curl
// session can authenticate without going through signup:
//
//	AUTH_SECRET=dev-secret go run ./cmd/devtoken -member 1 -email a@b.c
//	curl --cookie "auth-token=$TOKEN" localhost:8080/api/superpet/gem
func main() {
	memberID := flag.Int64("member", 1, "member id to embed as sub")
	email := flag.String("email", "", "optional email claim")
	name := flag.String("name", "", "optional name claim")
	ttl := flag.Duration("ttl", 7*24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		log.Fatal("AUTH_SECRET is required")
	}
	if *memberID <= 0 {
		log.Fatal("-member must be positive")
	}

	id := domain.Identity{MemberID: domain.MemberID(*memberID)}
	if *email != "" {
		id.Email = email
	}
	if *name != "" {
		id.Name = name
	}

	signed, err := token.New([]byte(secret), *ttl).Sign(id)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	fmt.Println(signed)
}
