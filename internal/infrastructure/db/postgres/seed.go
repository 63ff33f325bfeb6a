package postgres

import (
	"context"
	"log"

	"github.com/solarsmart/account-service/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederStore interface {
	Insert(ctx context.Context, u domain.User) (domain.User, error)
}

// SeedUsers inserts a couple of known accounts so a fresh dev database has an
// admin and something for the dashboard to show. Restart safe: duplicates are
// ignored.
func SeedUsers(ctx context.Context, store SeederStore, hasher SeederHasher) {
	type seedUser struct {
		Name   string
		Email  string
		Gender string
		Role   string
		Pass   string
	}

	seeds := []seedUser{
		{Name: "Admin", Email: "admin@solarsmart.local", Gender: domain.GenderUnknown, Role: "admin", Pass: "AdminPassword123!"},
		{Name: "Demo User", Email: "demo@solarsmart.local", Gender: domain.GenderUnknown, Role: "user", Pass: "DemoPassword123!"},
	}

	for _, s := range seeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			log.Printf("[seed] hash failed (%s): %v", s.Email, err)
			continue
		}

		u := domain.User{
			Name:         s.Name,
			Email:        s.Email,
			PasswordHash: hash,
			Gender:       s.Gender,
			Role:         s.Role,
		}

		if _, err := store.Insert(ctx, u); err != nil {
			// ignore duplicates (restart safe)
			continue
		}
	}

	log.Println("[seed] postgres users seeded")
}
