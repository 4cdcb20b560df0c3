package cmd

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/server"
	"github.com/Alturino/shopping/product/internal/cache"
	"github.com/Alturino/shopping/product/internal/controller"
	"github.com/Alturino/shopping/product/internal/service"
)

func AttachProduct(router *mux.Router, deps server.Dependencies) {
	productService := service.NewProductService(deps.Queries, cache.NewProductCache(deps.Cache))
	controller.AttachProductController(router, productService)
}

func RunProductService(c context.Context, configDir string) error {
	return server.Run(c, constants.AppProductService, configDir, AttachProduct)
}
