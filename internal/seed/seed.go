// Package seed fills an empty store with the demo catalog and accounts.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electro_shop/internal/hash"
	"github.com/Skotchmaster/electro_shop/internal/logging"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
)

// DataVersion is bumped whenever the demo catalog changes. A store holding an
// older version loses its products and gets the new catalog on the next Ensure.
const DataVersion = 2

const versionKey = "data_version"

const (
	minStock = 5
	maxStock = 44
)

type account struct {
	Name     string
	Email    string
	Password string
	Role     string
}

var accounts = []account{
	{"Admin User", "admin@shop.com", "admin123", models.RoleAdmin},
	{"John Doe", "user@shop.com", "user123", models.RoleUser},
}

type Seeder struct {
	Repo *repo.GormRepo
	Rand *rand.Rand
}

func New(r *repo.GormRepo) *Seeder {
	return &Seeder{Repo: r, Rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

type Report struct {
	Reseeded bool `json:"reseeded"`
	Products int  `json:"products"`
	Users    int  `json:"users"`
}

// Products builds the demo catalog with random stock.
func (s *Seeder) Products() []models.Product {
	out := make([]models.Product, 0, len(templates))
	for _, t := range templates {
		out = append(out, models.Product{
			Name:        t.Name,
			Category:    t.Category,
			Price:       decimal.NewFromInt(t.Price),
			Stock:       minStock + s.Rand.IntN(maxStock-minStock+1),
			Image:       t.Image,
			Description: fmt.Sprintf("The %s is a top-tier choice for %s enthusiasts. Features excellent build quality, high performance, and reliable durability. Perfect for your setup.", t.Name, strings.ToLower(t.Category)),
		})
	}
	return out
}

// Ensure brings the store up to the current data version without touching
// orders or repair jobs.
func (s *Seeder) Ensure(ctx context.Context) (*Report, error) {
	l := logging.FromContext(ctx).With("component", "seed")
	rep := &Report{}

	stored, err := s.storedVersion(ctx)
	if err != nil {
		return nil, err
	}
	if stored < DataVersion {
		l.Info("seed_reseed", "stored_version", stored, "version", DataVersion)
		if err := s.Repo.DeleteCatalog(ctx); err != nil {
			return nil, err
		}
		if err := s.Repo.SetMeta(ctx, versionKey, strconv.Itoa(DataVersion)); err != nil {
			return nil, err
		}
		rep.Reseeded = true
	}

	n, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		products := s.Products()
		if err := s.Repo.CreateProducts(ctx, products); err != nil {
			return nil, err
		}
		rep.Products = len(products)
	}

	users, err := s.Repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == 0 {
		if rep.Users, err = s.createAccounts(ctx); err != nil {
			return nil, err
		}
	}

	l.Info("seed_done", "products", rep.Products, "users", rep.Users, "reseeded", rep.Reseeded)
	return rep, nil
}

// Import wipes everything and loads the demo data.
func (s *Seeder) Import(ctx context.Context) (*Report, error) {
	if err := s.Repo.DestroyAll(ctx); err != nil {
		return nil, err
	}
	return s.Ensure(ctx)
}

// Destroy empties every table.
func (s *Seeder) Destroy(ctx context.Context) error {
	return s.Repo.DestroyAll(ctx)
}

func (s *Seeder) storedVersion(ctx context.Context) (int, error) {
	raw, err := s.Repo.GetMeta(ctx, versionKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// an unreadable marker is treated as a very old store
		return 0, nil
	}
	return v, nil
}

func (s *Seeder) createAccounts(ctx context.Context) (int, error) {
	created := 0
	for _, a := range accounts {
		hashed, err := hash.HashPassword(a.Password)
		if err != nil {
			return created, err
		}
		u := &models.User{Name: a.Name, Email: a.Email, PasswordHash: hashed, Role: a.Role}
		if err := s.Repo.CreateUserIfNotExists(ctx, u); err != nil {
			if errors.Is(err, repo.ErrUserAlreadyExist) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
