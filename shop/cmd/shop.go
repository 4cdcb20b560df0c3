package cmd

import (
	"context"

	"github.com/gorilla/mux"

	cartCmd "github.com/Alturino/shopping/cart/cmd"
	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/server"
	orderCmd "github.com/Alturino/shopping/order/cmd"
	productCmd "github.com/Alturino/shopping/product/cmd"
	userCmd "github.com/Alturino/shopping/user/cmd"
)

// AttachShop mounts every HTTP area on one router.
func AttachShop(router *mux.Router, deps server.Dependencies) {
	userCmd.AttachUser(router, deps)
	productCmd.AttachProduct(router, deps)
	cartCmd.AttachCart(router, deps)
	orderCmd.AttachOrder(router, deps)
}

func RunShopService(c context.Context, configDir string) error {
	return server.Run(c, constants.AppShop, configDir, AttachShop)
}
