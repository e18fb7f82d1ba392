package container

import (
	"context"
	"encoding/json"

	"ims/internal/client"
	"ims/internal/console"
	"ims/internal/core/config"
	"ims/internal/inventory"
	"ims/internal/inventory/ingredients"
	"ims/internal/inventory/merchandise"
	"ims/internal/inventory/products"
	"ims/internal/inventory/recipes"
	"ims/internal/inventory/supplies"
	"ims/internal/staff"
	"ims/internal/table"
	"ims/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Session        security.Session
	SessionHandler *security.SessionHandler
	Resources      *console.Registry
}

func NewAppContainer(cfg *config.Config, store security.Store, logger *zap.Logger) *Container {
	session := security.NewSession(store, logger)
	sessionHandler := security.NewSessionHandler(session, logger)

	requester := func(key string) client.Requester {
		baseURL, err := cfg.BaseURL(key)
		if err != nil {
			return unconfigured{err: err}
		}
		return client.NewResourceClient(client.Config{
			Service: config.ServiceName(key),
			BaseURL: baseURL,
			Timeout: cfg.RequestTimeout,
		}, session, logger)
	}
	stock := inventory.Options{LowStockThreshold: cfg.LowStockThreshold}

	staffController := table.NewController(staff.Definition(staff.Options{
		ImageBaseURL: cfg.ImageBaseURL,
		DefaultImage: cfg.DefaultImage,
	}), requester(config.AccountsAPI), session, logger)
	ingredientController := table.NewController(ingredients.Definition(stock), requester(config.IngredientsAPI), session, logger)
	merchandiseController := table.NewController(merchandise.Definition(stock), requester(config.MerchandiseAPI), session, logger)
	supplyController := table.NewController(supplies.Definition(stock), requester(config.MaterialsAPI), session, logger)
	productController := table.NewController(products.Definition(), requester(config.ProductsAPI), session, logger)
	productTypeController := table.NewController(products.TypeDefinition(), requester(config.TypesAPI), session, logger)
	recipeController := table.NewController(recipes.Definition(), requester(config.RecipesAPI), session, logger)

	resources := console.NewRegistry(
		console.NewResourceHandler(staffController, logger),
		console.NewResourceHandler(ingredientController, logger),
		console.NewResourceHandler(merchandiseController, logger),
		console.NewResourceHandler(supplyController, logger),
		console.NewResourceHandler(productController, logger),
		console.NewResourceHandler(productTypeController, logger),
		console.NewResourceHandler(recipeController, logger),
	)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Session:        session,
		SessionHandler: sessionHandler,
		Resources:      resources,
	}
}

func (c *Container) Close() {
	c.Resources.Close()
	_ = c.Logger.Sync()
}

// unconfigured stands in for the client of a service without a base URL.
type unconfigured struct {
	err error
}

func (u unconfigured) Request(context.Context, string, string, client.Body) (json.RawMessage, error) {
	return nil, u.err
}
