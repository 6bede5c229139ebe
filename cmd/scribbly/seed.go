package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scribbly/scribbly/internal/config"
	"github.com/scribbly/scribbly/internal/logger"
	"github.com/scribbly/scribbly/internal/redis"
	"github.com/scribbly/scribbly/internal/sources/seed"
	redisstore "github.com/scribbly/scribbly/internal/store/redis"
)

var (
	seedFile  string
	seedOwner string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import a notes seed file into the store and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := logger.New(cfg.LogLevel, cfg.PrettyLog)

		file := seedFile
		if file == "" {
			file = cfg.SeedFile
		}
		if file == "" {
			return fmt.Errorf("no seed file: pass --file or set SCRIBBLY_SEED_FILE")
		}
		owner := seedOwner
		if owner == "" {
			owner = cfg.SeedOwner
		}

		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = client.Close() }()

		importer := seed.NewImporter(redisstore.NewStore(client), log)
		return importer.Import(context.Background(), file, owner)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "path to the seed YAML file (defaults to SCRIBBLY_SEED_FILE)")
	seedCmd.Flags().StringVar(&seedOwner, "owner", "", "owner id for the seeded notes (defaults to SCRIBBLY_SEED_OWNER)")
	rootCmd.AddCommand(seedCmd)
}
