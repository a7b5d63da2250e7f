package httpserver

import (
	"gorm.io/gorm"

	"github.com/Skotchmaster/electro_shop/internal/cache"
	"github.com/Skotchmaster/electro_shop/internal/events"
	"github.com/Skotchmaster/electro_shop/internal/handlers"
	authmw "github.com/Skotchmaster/electro_shop/internal/middleware/auth"
	"github.com/Skotchmaster/electro_shop/internal/middleware/csrf"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/search"
	"github.com/Skotchmaster/electro_shop/internal/service"
	"github.com/Skotchmaster/electro_shop/internal/tokens"
)

// Options carries the infrastructure the handlers are built on.
// Cache and Index may be nil; Events defaults to events.Nop.
type Options struct {
	DB     *gorm.DB
	Tokens *tokens.Issuer
	Events events.Publisher
	Cache  *cache.ProductCache
	Index  search.Index
	CSRF   *csrf.Config
}

func NewDeps(o Options) *Deps {
	if o.Events == nil {
		o.Events = events.Nop{}
	}
	r := &repo.GormRepo{DB: o.DB}

	catalog := &service.CatalogService{Repo: r, Cache: o.Cache, Index: o.Index, Events: o.Events}
	orders := &service.OrderService{Repo: r, Catalog: catalog, Events: o.Events}
	repairs := &service.RepairService{Repo: r, Events: o.Events}
	accounts := &service.AuthService{Repo: r, Tokens: o.Tokens, Events: o.Events}
	social := &service.SocialService{Repo: r, Catalog: catalog}

	return &Deps{
		DB:   o.DB,
		Auth: authmw.New(o.Tokens.AccessSecret, accounts),
		CSRF: o.CSRF,

		AuthHandler:      &handlers.AuthHandler{Svc: accounts},
		ProductHandler:   &handlers.ProductHandler{Svc: catalog, Social: social},
		CartHandler:      &handlers.CartHandler{Svc: &service.CartService{Repo: r, Orders: orders}},
		WishlistHandler:  &handlers.WishlistHandler{Svc: social},
		OrderHandler:     &handlers.OrderHandler{Svc: orders, Users: accounts},
		RepairHandler:    &handlers.RepairHandler{Svc: repairs},
		BillingHandler:   &handlers.BillingHandler{Svc: &service.BillingService{Repo: r, Orders: orders}},
		DashboardHandler: &handlers.DashboardHandler{Svc: &service.DashboardService{Repo: r}},
	}
}
