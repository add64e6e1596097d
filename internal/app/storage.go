package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"

	"github.com/riskibarqy/transfer-market/internal/config"
	"github.com/riskibarqy/transfer-market/internal/domain/club"
	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/domain/player"
	"github.com/riskibarqy/transfer-market/internal/domain/preference"
	"github.com/riskibarqy/transfer-market/internal/domain/transfer"
	rediskv "github.com/riskibarqy/transfer-market/internal/infrastructure/kvstore/redis"
	sqlitekv "github.com/riskibarqy/transfer-market/internal/infrastructure/kvstore/sqlite"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/transfer-market/internal/platform/cache"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
)

type storage struct {
	clubs         club.Repository
	players       player.Repository
	transfers     transfer.Repository
	gateway       transfer.Gateway
	notifications notification.Repository
	cooldowns     cooldown.Repository
	preferences   preference.Store
	closers       []func() error
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	var s storage

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := otelsqlx.Open("postgres", postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary),
			otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return s, fmt.Errorf("open postgres: %w", err)
		}
		s.closers = append(s.closers, db.Close)
		if err := db.PingContext(ctx); err != nil {
			return s, fmt.Errorf("ping postgres: %w", err)
		}
		if cfg.DBSeedOnBoot {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				return s, err
			}
		}

		s.clubs = postgres.NewClubRepository(db)
		s.players = postgres.NewPlayerRepository(db)
		s.transfers = postgres.NewTransferRepository(db)
		s.gateway = postgres.NewGateway(db)
		s.notifications = postgres.NewNotificationRepository(db)
	default:
		market := memory.NewSeededMarket()
		s.clubs = memory.NewClubRepository(market)
		s.players = memory.NewPlayerRepository(market)
		s.transfers = memory.NewTransferRepository(market)
		s.gateway = memory.NewGateway(market)
		s.notifications = memory.NewNotificationRepository()
	}

	if cfg.CacheEnabled {
		readCache := basecache.NewStore[any](cfg.CacheTTL)
		s.clubs = cache.NewClubRepository(s.clubs, readCache)
		s.players = cache.NewPlayerRepository(s.players, readCache)
		s.transfers = cache.NewTransferRepository(s.transfers, readCache)
		s.gateway = cache.NewGateway(s.gateway, readCache)
	}

	switch cfg.CooldownStore {
	case config.CooldownStoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		s.closers = append(s.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return s, fmt.Errorf("ping redis: %w", err)
		}
		s.cooldowns = rediskv.NewCooldownStore(client, cfg.RedisKeyPrefix)
	default:
		s.cooldowns = memory.NewCooldownRepository()
	}

	if cfg.PreferencesSQLitePath != "" {
		prefs, err := sqlitekv.Open(ctx, cfg.PreferencesSQLitePath)
		if err != nil {
			return s, fmt.Errorf("open preference store: %w", err)
		}
		s.closers = append(s.closers, prefs.Close)
		s.preferences = prefs
	} else {
		s.preferences = memory.NewPreferenceStore()
	}

	logger.InfoContext(ctx, "storage ready",
		"driver", cfg.StorageDriver,
		"cooldown_store", cfg.CooldownStore,
		"cache_enabled", cfg.CacheEnabled,
		"sqlite_preferences", cfg.PreferencesSQLitePath != "",
	)
	return s, nil
}
