package app

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/phenrril/resinwood/internal/adapters/httpserver"
	"github.com/phenrril/resinwood/internal/adapters/productapi"
	"github.com/phenrril/resinwood/internal/adapters/repo/postgres"
	"github.com/phenrril/resinwood/internal/adapters/session/memory"
	"github.com/phenrril/resinwood/internal/adapters/storage/localfs"
	"github.com/phenrril/resinwood/internal/catalog"
	"github.com/phenrril/resinwood/internal/configurator"
	"github.com/phenrril/resinwood/internal/domain"
	"github.com/phenrril/resinwood/internal/personalization"
	"github.com/phenrril/resinwood/internal/usecase"
)

type App struct {
	DB     *gorm.DB
	Config Config

	Catalog        *catalog.Catalog
	Sessions       *memory.Store
	Images         domain.ImageStore
	ConfiguratorUC *usecase.ConfiguratorUC
	CartUC         *usecase.CartUC
	OrderUC        *usecase.OrderUC
	ProductUC      *usecase.ProductUC
}

func NewApp(db *gorm.DB, cfg Config) (*App, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	machine := configurator.New(cat, cat.PricingTable(), personalization.PolicyByName(cfg.PersonalizationCharset))
	sessions := memory.New(cfg.SessionTTL)
	products := productapi.New(cfg.ExternalAPIURL,
		productapi.WithTimeout(cfg.ExternalAPITimeout),
		productapi.WithRetries(cfg.ExternalAPIRetries),
	)

	a := &App{
		DB:       db,
		Config:   cfg,
		Catalog:  cat,
		Sessions: sessions,
		Images:   localfs.New(cfg.ImagesDir),
	}
	a.ConfiguratorUC = &usecase.ConfiguratorUC{Sessions: sessions, Machine: machine}
	a.CartUC = &usecase.CartUC{Sessions: sessions, Products: products}
	a.ProductUC = &usecase.ProductUC{Products: products}
	a.OrderUC = &usecase.OrderUC{
		Orders:    postgres.NewOrderRepo(db),
		Customers: postgres.NewCustomerRepo(db),
		Sessions:  sessions,
		Currency:  cfg.Currency,
	}
	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Catalog, a.ConfiguratorUC, a.CartUC, a.OrderUC, a.ProductUC, a.Images, httpserver.Options{
		SessionKey:    a.Config.SessionKey,
		AdminToken:    a.Config.AdminToken,
		SecureCookies: a.Config.IsProduction(),
		CORSOrigin:    a.Config.CORSOrigin,
	})
}

// MigrateAndSeed brings the schema up to date. The catalog is static data and
// needs no seeding.
func (a *App) MigrateAndSeed() error {
	return postgres.Migrate(a.DB)
}
