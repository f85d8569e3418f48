package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fortifai/assistant/internal/profile"
	"github.com/fortifai/assistant/server"
	"github.com/fortifai/assistant/store"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "fortifai",
	Short: "Voice-enabled assistant server for seniors",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
			os.Exit(1)
		}

		logger := newLogger(instanceProfile)
		slog.SetDefault(logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := server.NewServer(ctx, instanceProfile, store.NewReminderStore(), logger)
		if err != nil {
			logger.Error("failed to create server", slog.String("error", err.Error()))
			os.Exit(1)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				logger.Error("server failed", slog.String("error", err.Error()))
				os.Exit(1)
			}
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			s.Shutdown(context.Background())
		}
	},
}

// newLogger builds the process logger: readable text in dev, JSON in prod.
func newLogger(p *profile.Profile) *slog.Logger {
	if p.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func init() {
	viper.SetEnvPrefix("fortifai")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("mode", "demo", `server mode: "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "binding address")
	rootCmd.PersistentFlags().Int("port", 8081, "binding port")

	if err := viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port")); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
