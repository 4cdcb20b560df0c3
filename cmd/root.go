package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/shopping/cart/cmd"
	"github.com/Alturino/shopping/internal/constants"
	"github.com/Alturino/shopping/internal/log"
	notificationCmd "github.com/Alturino/shopping/notification/cmd"
	orderCmd "github.com/Alturino/shopping/order/cmd"
	productCmd "github.com/Alturino/shopping/product/cmd"
	shopCmd "github.com/Alturino/shopping/shop/cmd"
	userCmd "github.com/Alturino/shopping/user/cmd"
)

type runFunc func(c context.Context, configDir string) error

func Start() {
	logger := log.New("", log.EnvDevelopment).
		With().
		Str(log.KeyAppName, constants.AppShop).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	var configDir string
	rootCmd := &cobra.Command{
		Use:           "shopping",
		Short:         "Shopping backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./env", "directory holding <service>.yaml")

	command := func(use string, short string, run runFunc) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), configDir)
			},
		}
	}
	rootCmd.AddCommand(
		command("shop", "Run every http service in one process", shopCmd.RunShopService),
		command("user", "Run user service", userCmd.RunUserService),
		command("product", "Run product service", productCmd.RunProductService),
		command("cart", "Run cart service", cartCmd.RunCartService),
		command("order", "Run order service", orderCmd.RunOrderService),
		command("notification", "Run notification service", notificationCmd.RunNotificationService),
		command("migrate", "Apply pending database migrations", runMigration),
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
