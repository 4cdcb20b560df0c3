package cmd

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/server"
	"github.com/Alturino/shopping/user/internal/controller"
	"github.com/Alturino/shopping/user/internal/service"
)

func AttachUser(router *mux.Router, deps server.Dependencies) {
	userService := service.NewUserService(deps.Queries, deps.Tokens)
	controller.AttachUserController(router, userService)
}

func RunUserService(c context.Context, configDir string) error {
	return server.Run(c, constants.AppUserService, configDir, AttachUser)
}
