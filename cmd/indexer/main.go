// Package main runs the ethtxs block indexer over a height range.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/ethereum"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/normalize"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/repository/clickhouse"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/repository/postgres"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/repository/redis"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/service/indexer"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/metrics"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/transport"
	"github.com/goodnatureofminers/ethtxs-indexer/migrations"
)

type config struct {
	DatabaseURL string `long:"database-url" env:"ETHTXS_DATABASE_URL" description:"Postgres connection string" required:"true"`
	Chain       string `long:"chain" env:"ETHTXS_CHAIN" description:"chain label for metrics" default:"ethereum"`

	RPCURL            string        `long:"rpc-url" env:"ETHTXS_RPC_URL" description:"JSON-RPC endpoint (http or https)" required:"true"`
	RPCUser           string        `long:"rpc-user" env:"ETHTXS_RPC_USER" description:"JSON-RPC basic auth username"`
	RPCPassword       string        `long:"rpc-password" env:"ETHTXS_RPC_PASSWORD" description:"JSON-RPC basic auth password"`
	RPCRequestsPerSec int           `long:"rpc-rps" env:"ETHTXS_RPC_RPS" description:"JSON-RPC requests per second, 0 disables the limit" default:"200"`
	RPCMaxAttempts    int           `long:"rpc-max-attempts" env:"ETHTXS_RPC_MAX_ATTEMPTS" description:"attempts per JSON-RPC call" default:"5"`
	RPCInitialBackoff time.Duration `long:"rpc-initial-backoff" env:"ETHTXS_RPC_INITIAL_BACKOFF" description:"first retry delay" default:"500ms"`
	RPCMaxBackoff     time.Duration `long:"rpc-max-backoff" env:"ETHTXS_RPC_MAX_BACKOFF" description:"retry delay cap" default:"30s"`
	RPCTimeout        time.Duration `long:"rpc-timeout" env:"ETHTXS_RPC_TIMEOUT" description:"HTTP timeout per JSON-RPC request" default:"30s"`

	StartBlock   *uint64  `long:"start-block" env:"ETHTXS_START_BLOCK" description:"first height to index (required unless --retry-failed)"`
	EndBlock     *uint64  `long:"end-block" env:"ETHTXS_END_BLOCK" description:"height to stop before; unset means the chain head at start"`
	FetchWidth   int      `long:"fetch-width" env:"ETHTXS_FETCH_WIDTH" description:"block fetches in flight" default:"60"`
	ReceiptWidth int      `long:"receipt-width" env:"ETHTXS_RECEIPT_WIDTH" description:"receipt lookups in flight per block" default:"8"`
	DBMaxConns   int32    `long:"db-max-conns" env:"ETHTXS_DB_MAX_CONNS" description:"Postgres pool size" default:"50"`
	SkipExisting bool     `long:"skip-existing" env:"ETHTXS_SKIP_EXISTING" description:"skip transactions whose hash is already stored"`
	WatchAddress []string `long:"watch-address" env:"ETHTXS_WATCH_ADDRESS" env-delim:"," description:"only keep transactions from or to this address (repeatable)"`

	ClickhouseDSN string `long:"clickhouse-dsn" env:"ETHTXS_CLICKHOUSE_DSN" description:"optional ClickHouse analytics mirror"`
	RedisURL      string `long:"redis-url" env:"ETHTXS_REDIS_URL" description:"optional failed-height registry"`
	RetryFailed   bool   `long:"retry-failed" env:"ETHTXS_RETRY_FAILED" description:"sweep only heights recorded as failed in Redis"`

	MetricsAddr      string        `long:"metrics-addr" env:"ETHTXS_METRICS_ADDR" description:"address for /metrics and /status, empty disables" default:":2112"`
	ProgressInterval time.Duration `long:"progress-interval" env:"ETHTXS_PROGRESS_INTERVAL" description:"progress log interval" default:"10s"`
	FailOnError      bool          `long:"fail-on-error" env:"ETHTXS_FAIL_ON_ERROR" description:"exit non-zero when any height failed"`
	LogJSON          bool          `long:"log-json" env:"ETHTXS_LOG_JSON" description:"production JSON logging"`
	Migrate          bool          `long:"migrate" env:"ETHTXS_MIGRATE" description:"apply schema migrations on startup"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("can't load .env: " + err.Error())
	}

	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := cfg.validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("ethtxs indexer failed", zap.Error(err))
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func (c config) validate() error {
	switch {
	case c.FetchWidth < 1:
		return errors.New("fetch width must be positive")
	case c.ReceiptWidth < 1:
		return errors.New("receipt width must be positive")
	case c.RPCMaxAttempts < 1:
		return errors.New("rpc max attempts must be positive")
	case c.RetryFailed && c.RedisURL == "":
		return errors.New("retry-failed requires redis-url")
	case c.RetryFailed:
		return nil
	case c.StartBlock == nil:
		return errors.New("start block is required unless retry-failed is set")
	case c.EndBlock != nil && *c.EndBlock < *c.StartBlock:
		return fmt.Errorf("end block %d before start block %d", *c.EndBlock, *c.StartBlock)
	}
	return nil
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.Migrate {
		if err := migrations.Up(cfg.DatabaseURL, migrations.Postgres); err != nil {
			return fmt.Errorf("apply postgres migrations: %w", err)
		}
		if cfg.ClickhouseDSN != "" {
			if err := migrations.Up(cfg.ClickhouseDSN, migrations.ClickHouse); err != nil {
				return fmt.Errorf("apply clickhouse migrations: %w", err)
			}
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("init postgres: %w", err)
	}
	defer pool.Close()

	client, err := ethereum.Dial(ctx, cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword, cfg.RPCTimeout)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer client.Close()

	rpcMetrics := metrics.NewRPCClient(cfg.Chain)
	source := ethereum.NewSource(
		ethereum.NewRPCClient(client, rpcMetrics),
		ethereum.RetryPolicy{
			MaxAttempts:    cfg.RPCMaxAttempts,
			InitialBackoff: cfg.RPCInitialBackoff,
			MaxBackoff:     cfg.RPCMaxBackoff,
		},
		cfg.RPCRequestsPerSec,
		rpcMetrics,
		logger.Named("source"),
	)

	filter, err := normalize.NewAddressFilter(cfg.WatchAddress)
	if err != nil {
		return err
	}
	if filter.Len() > 0 {
		logger.Info("address filter enabled", zap.Strings("addresses", cfg.WatchAddress))
	}

	var repoOpts []postgres.Option
	if cfg.SkipExisting {
		repoOpts = append(repoOpts, postgres.WithSkipExisting())
	}
	repo := postgres.NewRepository(pool, metrics.NewRepository("postgres", cfg.Chain), repoOpts...)

	var mirror indexer.MirrorRepository
	if cfg.ClickhouseDSN != "" {
		chRepo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewRepository("clickhouse", cfg.Chain))
		if err != nil {
			return fmt.Errorf("init clickhouse mirror: %w", err)
		}
		defer func() {
			_ = chRepo.Close()
		}()
		mirror = chRepo
	}

	var registry *redis.FailureRegistry
	var failures indexer.FailureRegistry
	if cfg.RedisURL != "" {
		registry, err = redis.NewFailureRegistry(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("init failure registry: %w", err)
		}
		defer func() {
			_ = registry.Close()
		}()
		failures = registry
	}

	orchestrator, err := indexer.NewOrchestrator(
		source,
		normalize.NewNormalizer(source, cfg.ReceiptWidth, filter),
		repo,
		mirror,
		failures,
		metrics.NewIndexer(cfg.Chain),
		indexer.Config{
			FetchWidth:       cfg.FetchWidth,
			ProgressInterval: cfg.ProgressInterval,
		},
		logger.Named("indexer"),
	)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		serverCtx, stopServer := context.WithCancel(ctx)
		defer stopServer()
		go func() {
			if err := transport.Serve(serverCtx, cfg.MetricsAddr, transport.NewHandler(orchestrator, logger), logger); err != nil {
				logger.Error("Failed to listen and serve", zap.Error(err))
			}
		}()
	}

	var report indexer.Report
	if cfg.RetryFailed {
		heights, err := registry.FailedHeights(ctx)
		if err != nil {
			return fmt.Errorf("load failed heights: %w", err)
		}
		report, err = orchestrator.RunHeights(ctx, heights)
		if err != nil {
			return err
		}
	} else {
		r, err := orchestrator.ResolveRange(ctx, *cfg.StartBlock, cfg.EndBlock)
		if err != nil {
			return err
		}
		report, err = orchestrator.Run(ctx, r)
		if err != nil {
			return err
		}
	}

	return exitPolicy(report, cfg.FailOnError, logger)
}

// exitPolicy decides whether a finished sweep fails the process. Failed heights are reported but only
// fail the run when failOnError is set.
func exitPolicy(report indexer.Report, failOnError bool, logger *zap.Logger) error {
	err := report.Err()
	if err == nil {
		return nil
	}
	if failOnError {
		return err
	}
	logger.Warn("sweep finished with failed heights; exiting 0",
		zap.Uint64("failed", report.Failed),
		zap.Uint64("attempted", report.Attempted),
	)
	return nil
}
