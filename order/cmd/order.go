package cmd

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/server"
	"github.com/Alturino/shopping/order/internal/controller"
	"github.com/Alturino/shopping/order/internal/publisher"
	"github.com/Alturino/shopping/order/internal/service"
)

func AttachOrder(router *mux.Router, deps server.Dependencies) {
	orderService := service.NewOrderService(deps.Pool, deps.Queries, publisher.NewRedisPublisher(deps.Cache))
	controller.AttachOrderController(router, orderService, deps.Auth)
}

func RunOrderService(c context.Context, configDir string) error {
	return server.Run(c, constants.AppOrderService, configDir, AttachOrder)
}
