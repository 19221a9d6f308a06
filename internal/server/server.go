package server

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/chain"
	"github.com/dwarvesf/swappy/internal/controller"
	"github.com/dwarvesf/swappy/internal/evmrpc"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/handler/health"
	"github.com/dwarvesf/swappy/internal/monitoring"
	"github.com/dwarvesf/swappy/internal/simulation"
	"github.com/dwarvesf/swappy/internal/statesync"
	"github.com/dwarvesf/swappy/internal/store"
	pgstore "github.com/dwarvesf/swappy/internal/store/postgres"
	"github.com/dwarvesf/swappy/internal/telemetry"
	"github.com/dwarvesf/swappy/internal/transport/http"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func Init() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	if err := appConfig.Validate(); err != nil {
		logger.Fatal("[Init][Validate] invalid configuration", map[string]string{
			"error": err.Error(),
		})
	}

	db := pgstore.New(appConfig, logger)
	s := store.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := monitoring.NewHTTPMetrics()
	httpMetrics.MustRegister(registry)
	swapMetrics := monitoring.NewSwapMetrics()
	swapMetrics.MustRegister(registry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := http.Deps{
		DB:          db,
		Registry:    registry,
		HTTPMetrics: httpMetrics,
	}

	switch appConfig.Facilitator.Mode {
	case config.ModeOnchain:
		jobMetrics := monitoring.NewBackgroundJobMetrics()
		jobMetrics.MustRegister(registry)
		jobStatusManager := monitoring.NewJobStatusManager(logger, jobMetrics)
		defer jobStatusManager.Stop()

		rpc, err := newEvmRPC(appConfig, logger, registry)
		if err != nil {
			logger.Fatal("[Init][newEvmRPC] failed to connect to evm node", map[string]string{
				"error": err.Error(),
			})
		}

		tel := telemetry.New(db, s, appConfig, logger, rpc, swapMetrics)
		indexer := monitoring.NewInstrumentedTelemetry(tel, jobStatusManager, logger, appConfig)

		c := cron.New()
		_, err = c.AddFunc(appConfig.IndexPeriod, func() {
			_ = indexer.IndexSwapExecutions(ctx)
		})
		if err != nil {
			logger.Fatal("[Init][AddFunc] invalid index period", map[string]string{
				"error":        err.Error(),
				"index_period": appConfig.IndexPeriod,
			})
		}
		c.Start()
		defer c.Stop()

		deps.Controller = controller.NewOnchain(rpc, db, s, appConfig, logger, swapMetrics)
		deps.Chain = rpc
		deps.JobStatusManager = jobStatusManager
	default:
		env, err := bootSimulation(ctx, appConfig, logger, db, s)
		if err != nil {
			logger.Fatal("[Init][bootSimulation] failed to start simulated chain", map[string]string{
				"error": err.Error(),
			})
		}

		deps.Controller = controller.NewSimulated(env, db, s, appConfig, logger, swapMetrics)
		deps.Chain = health.ProbeFunc(func(context.Context) (uint64, error) {
			return env.Chain.BlockNumber(), nil
		})
	}

	if appConfig.Facilitator.AutoInitialize {
		autoInitialize(ctx, deps.Controller, appConfig, logger)
	}

	srv := &nethttp.Server{
		Addr:    ":" + appConfig.ApiServer.Port,
		Handler: http.NewHttpServer(appConfig, logger, deps),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("[Init][Shutdown]", map[string]string{
				"error": err.Error(),
			})
		}
	}()

	logger.Info("[Init] starting http server", map[string]string{
		"mode": appConfig.Facilitator.Mode,
		"port": appConfig.ApiServer.Port,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		logger.Fatal("[Init][ListenAndServe] http server stopped", map[string]string{
			"error": err.Error(),
		})
	}
	logger.Info("[Init] http server stopped")
}

func newEvmRPC(appConfig *config.AppConfig, logger *logger.Logger, registry *prometheus.Registry) (*monitoring.CircuitBreakerEvmRPC, error) {
	rpc, err := evmrpc.New(appConfig, logger)
	if err != nil {
		return nil, err
	}

	apiMetrics := monitoring.NewExternalAPIMetrics()
	apiMetrics.MustRegister(registry)
	return monitoring.NewCircuitBreakerEvmRPC(rpc, monitoring.EvmRPCCircuitBreakerConfig(), apiMetrics, logger), nil
}

// bootSimulation restores the simulated chain from the database, or seeds it
// from genesis on first start. Every later commit is written back.
func bootSimulation(ctx context.Context, appConfig *config.AppConfig, logger *logger.Logger, db *gorm.DB, s *store.Store) (*simulation.Environment, error) {
	genesis := simulation.DefaultGenesis()
	if path := appConfig.Facilitator.GenesisFile; path != "" {
		g, err := chain.LoadGenesis(path)
		if err != nil {
			return nil, err
		}
		genesis = g
	}
	if addr := appConfig.Facilitator.Address; addr != "" {
		genesis.Facilitator = common.HexToAddress(addr)
	}

	syncer, err := statesync.New(db, s, logger, genesis.Facilitator)
	if err != nil {
		return nil, err
	}

	state, blockNumber, ok, err := syncer.Hydrate(ctx)
	if err != nil {
		return nil, err
	}

	var env *simulation.Environment
	if ok {
		env = simulation.New(genesis, state)
		env.Chain.SetBlockNumber(blockNumber)
		logger.Info("[bootSimulation] restored persisted state", map[string]string{
			"block_number": strconv.FormatUint(env.Chain.BlockNumber(), 10),
		})
	} else {
		env = simulation.New(genesis, nil)
		if err := env.Seed(ctx); err != nil {
			return nil, err
		}
		if err := syncer.Persist(ctx, env.State.Export(), env.Chain.BlockNumber()); err != nil {
			return nil, err
		}
		logger.Info("[bootSimulation] seeded genesis", map[string]string{
			"facilitator": genesis.Facilitator.Hex(),
			"tokens":      strconv.Itoa(len(genesis.Tokens)),
			"pools":       strconv.Itoa(len(genesis.Pools)),
		})
	}

	env.Chain.OnCommit(syncer.OnCommit)
	return env, nil
}

// autoInitialize sets the configured router and wrapped native token on a
// facilitator that has not been initialized yet.
func autoInitialize(ctx context.Context, ctrl controller.IController, appConfig *config.AppConfig, logger *logger.Logger) {
	cfg, err := ctrl.Config(ctx)
	if err != nil {
		logger.Error("[autoInitialize][Config]", map[string]string{
			"error": err.Error(),
		})
		return
	}
	if cfg.Initialized {
		return
	}

	result, err := ctrl.Initialize(ctx,
		common.HexToAddress(appConfig.Facilitator.RouterAddress),
		common.HexToAddress(appConfig.Facilitator.WrappedNativeAddress))
	if errors.Is(err, facilitator.ErrAlreadyInitialized) {
		return
	}
	if err != nil {
		logger.Error("[autoInitialize][Initialize]", map[string]string{
			"error": err.Error(),
		})
		return
	}

	logger.Info("[autoInitialize] facilitator initialized", map[string]string{
		"tx_hash": result.TxHash,
		"router":  result.Config.Router,
	})
}
