package cmd

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/Alturino/shopping/cart/internal/controller"
	"github.com/Alturino/shopping/cart/internal/service"
	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/server"
)

func AttachCart(router *mux.Router, deps server.Dependencies) {
	cartService := service.NewCartService(deps.Pool, deps.Queries)
	controller.AttachCartController(router, cartService, deps.Auth)
}

func RunCartService(c context.Context, configDir string) error {
	return server.Run(c, constants.AppCartService, configDir, AttachCart)
}
