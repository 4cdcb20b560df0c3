package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/shopping/internal/config"
	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/infra"
	"github.com/Alturino/shopping/internal/log"
)

func runMigration(c context.Context, configDir string) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppMigration).
		Str(log.KeyTag, "main runMigration").
		Logger()
	c = logger.WithContext(c)

	cfg, err := config.InitConfig(c, configDir, constants.AppShop)
	if err != nil {
		err = fmt.Errorf("failed initializing config with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if err = infra.Migrate(c, cfg.Database); err != nil {
		err = fmt.Errorf("failed migrating database with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("migrated database")

	return nil
}
