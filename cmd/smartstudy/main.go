package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/smartstudy/internal/profile"
	"github.com/hrygo/smartstudy/internal/version"
	"github.com/hrygo/smartstudy/server"
	"github.com/hrygo/smartstudy/store"
	"github.com/hrygo/smartstudy/store/db"
)

var (
	rootCmd = &cobra.Command{
		Use:   "smartstudy",
		Short: `A study companion serving a question bank, dashboards, recordings and reminders.`,
		Run: func(_ *cobra.Command, _ []string) {
			instanceProfile := &profile.Profile{
				Mode:                 viper.GetString("mode"),
				Addr:                 viper.GetString("addr"),
				Port:                 viper.GetInt("port"),
				Data:                 viper.GetString("data"),
				Driver:               viper.GetString("driver"),
				DSN:                  viper.GetString("dsn"),
				StorageFile:          viper.GetString("storage-file"),
				NotificationsEnabled: viper.GetBool("notifications"),
				ReminderTimes:        viper.GetStringSlice("reminder-times"),
				Timezone:             viper.GetString("timezone"),
				Version:              version.GetCurrentVersion(viper.GetString("mode")),
			}
			instanceProfile.FromEnv()
			if err := instanceProfile.Validate(); err != nil {
				panic(err)
			}
			slog.SetDefault(server.NewLogger(os.Stderr, instanceProfile.Mode))

			ctx, cancel := context.WithCancel(context.Background())
			dbDriver, err := db.NewDBDriver(instanceProfile)
			if err != nil {
				cancel()
				slog.Error("failed to create db driver", "error", err)
				return
			}

			storeInstance := store.New(dbDriver, instanceProfile)
			if err := storeInstance.Migrate(ctx); err != nil {
				cancel()
				slog.Error("failed to migrate", "error", err)
				return
			}

			s, err := server.NewServer(ctx, instanceProfile, storeInstance)
			if err != nil {
				cancel()
				slog.Error("failed to create server", "error", err)
				return
			}

			c := make(chan os.Signal, 1)
			// Trigger graceful shutdown on SIGINT or SIGTERM.
			// The default signal sent by the `kill` command is SIGTERM,
			// which is taken as the graceful shutdown signal for many systems, eg., Kubernetes, Gunicorn.
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)

			if err := s.Start(ctx); err != nil {
				cancel()
				slog.Error("failed to start server", "error", err)
				return
			}

			printGreetings(instanceProfile)

			go func() {
				<-c
				s.Shutdown(ctx)
				cancel()
			}()

			// Wait for CTRL-C.
			<-ctx.Done()
		},
	}
)

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("port", 8081)
	viper.SetDefault("notifications", true)

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite", "postgres" or "memory"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name(aka. DSN)")
	rootCmd.PersistentFlags().String("storage-file", "", "JSON file for favorites and study history with the memory driver")
	rootCmd.PersistentFlags().Bool("notifications", true, "enable study notifications")
	rootCmd.PersistentFlags().StringSlice("reminder-times", nil, "daily study reminder times (HH:MM) armed in demo mode")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone of study days and reminders, default UTC")

	for _, name := range []string{"mode", "addr", "port", "data", "driver", "dsn", "storage-file", "notifications", "reminder-times", "timezone"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("smartstudy")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func printGreetings(profile *profile.Profile) {
	if profile.IsDev() {
		println("Development mode is enabled")
		println("DSN: ", profile.DSN)
	}
	fmt.Printf(`---
Server profile
version: %s
data: %s
addr: %s
port: %d
mode: %s
driver: %s
---
`, profile.Version, profile.Data, profile.Addr, profile.Port, profile.Mode, profile.Driver)

	print(greetingBanner)
	if len(profile.Addr) == 0 {
		fmt.Printf("Version %s has been started on port %d\n", profile.Version, profile.Port)
	} else {
		fmt.Printf("Version %s has been started on address '%s' and port %d\n", profile.Version, profile.Addr, profile.Port)
	}
}

const greetingBanner = `
 ____                       _   ____  _             _
/ ___| _ __ ___   __ _ _ __| |_/ ___|| |_ _   _  __| |_   _
\___ \| '_ ` + "`" + ` _ \ / _` + "`" + ` | '__| __\___ \| __| | | |/ _` + "`" + ` | | | |
 ___) | | | | | | (_| | |  | |_ ___) | |_| |_| | (_| | |_| |
|____/|_| |_| |_|\__,_|_|   \__|____/ \__|\__,_|\__,_|\__, |
                                                      |___/
`

func main() {
	// Local development reads SMARTSTUDY_* settings from .env when present.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
