package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/iss-spotter/iss-spotter/internal/core/ports"
	"github.com/iss-spotter/iss-spotter/internal/core/service"
	"github.com/iss-spotter/iss-spotter/internal/infrastructure/db/mongo"
	"github.com/iss-spotter/iss-spotter/internal/infrastructure/db/redis"
	"github.com/iss-spotter/iss-spotter/internal/infrastructure/geoip"
	"github.com/iss-spotter/iss-spotter/internal/infrastructure/queue"
	"github.com/iss-spotter/iss-spotter/internal/infrastructure/upstream"
	"github.com/iss-spotter/iss-spotter/internal/pkg/config"
	"github.com/iss-spotter/iss-spotter/pkg/logger"
)

const serviceName = "iss-spotter"

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

func lookuper() envconfig.Lookuper {
	return envconfig.OsLookuper()
}

func loggerOptions(cfg *config.Config) logger.Options {
	return logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == config.EnvDevelopment,
		Service: serviceName,
	}
}

// app holds everything a command needs to run the pipeline, plus the
// resources to release afterwards.
type app struct {
	flyover ports.FlyoverService
	lookups ports.LookupService

	mongoDB  *gomongo.Database
	redis    *goredis.Client
	recorder *queue.Recorder

	closers []func()
}

type appOptions struct {
	// history connects MongoDB and records every run when MONGO_URI is set.
	history bool
}

// newApp wires the pipeline from cfg. The recorder, if any, runs until ctx
// is cancelled; call close after cancelling.
func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts appOptions) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	session := upstream.NewHTTPClient(cfg.Upstream.Timeout)
	ips := upstream.NewIPify(cfg.Upstream.IPServiceURL, session, log)
	passes := upstream.NewOpenNotify(cfg.Upstream.PassServiceURL, cfg.Upstream.PassCount, session, log)

	geo, err := a.geoResolver(cfg, session, log)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled() {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}, log)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		geo = upstream.NewCachedGeoResolver(geo, redis.NewCoordinatesCache(rdb, cfg.Redis.CacheTTL), log)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("coordinates cache enabled")
	}

	var recorder ports.LookupRecorder
	if opts.history && cfg.HistoryEnabled() {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		})
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}

		repo := mongo.NewLookupRepository(db)
		a.mongoDB = db
		a.recorder = queue.NewRecorder(cfg.Recorder.Workers, repo, log)
		a.recorder.Start(ctx)
		a.lookups = service.NewLookupService(repo, log)
		recorder = a.recorder
		log.Info().Str("database", cfg.Mongo.Database).Msg("lookup history enabled")
	}

	a.flyover = service.NewFlyoverService(ips, geo, passes, recorder, log)
	return a, nil
}

func (a *app) geoResolver(cfg *config.Config, session upstream.HTTPClient, log zerolog.Logger) (ports.GeoResolver, error) {
	switch cfg.Upstream.GeoProvider {
	case config.GeoProviderIP2Location:
		db, err := geoip.NewIP2Location(cfg.Upstream.IP2LocationDB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		log.Info().Str("path", cfg.Upstream.IP2LocationDB).Msg("using offline geolocation")
		return db, nil
	case config.GeoProviderHTTP:
		return upstream.NewIPAPI(cfg.Upstream.GeoServiceURL, session, log), nil
	default:
		return nil, fmt.Errorf("unknown geo provider %q", cfg.Upstream.GeoProvider)
	}
}

// close waits for the recorder to drain, then releases connections in
// reverse order of acquisition.
func (a *app) close() {
	if a.recorder != nil {
		a.recorder.Wait()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
