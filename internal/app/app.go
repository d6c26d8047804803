package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-co-op/gocron/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/collab/telegram"
	"github.com/dealgora/dealgora/internal/config"
	"github.com/dealgora/dealgora/internal/pg"
	"github.com/dealgora/dealgora/internal/repo"
	"github.com/dealgora/dealgora/internal/service"
	"github.com/dealgora/dealgora/internal/worker/delivery"
	"github.com/dealgora/dealgora/internal/worker/reminder"
	"github.com/dealgora/dealgora/internal/worker/sweeper"
	"github.com/dealgora/dealgora/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg       *config.Config
	pool      *pgxpool.Pool
	repo      *repo.Repositories
	srv       *service.Services
	scheduler gocron.Scheduler

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.pool = pool
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(cfg, a.repo, txManager)

	bot, err := telegram.New(cfg.BotToken, cfg.CollabTimeout)
	if err != nil {
		zap.L().Error("telegram client failed: ", zap.Error(err))
		return fmt.Errorf("can't build telegram client: %w", err)
	}

	if err := a.startWorkers(ctx, txManager, bot); err != nil {
		return fmt.Errorf("can't start workers: %w", err)
	}
	if err := a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// startWorkers registers the three periodic jobs. Singleton mode only
// prevents overlap inside this process; cross-instance correctness
// comes from the conditional claims in the repositories.
func (a *Application) startWorkers(ctx context.Context, txManager pg.TXManager, bot *telegram.Client) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("can't create scheduler: %w", err)
	}
	a.scheduler = scheduler

	sweep := sweeper.New(a.repo.DealRepo, a.srv.EscrowService, bot, txManager, a.cfg.SweepBatchLimit)
	remind := reminder.New(a.repo.DealRepo, a.repo.ReminderRepo, bot, a.cfg.ReminderLookahead, a.cfg.SweepBatchLimit)
	deliver := delivery.New(a.repo.DealRepo, a.srv.EscrowService, bot, bot, txManager,
		a.cfg.DeliveryBatchLimit, a.cfg.DeliveryLookahead, a.cfg.CollabTimeout)

	jobs := []struct {
		name     string
		interval time.Duration
		run      func(ctx context.Context) error
	}{
		{"deadline-sweeper", a.cfg.SweepInterval, sweep.RunOnce},
		{"reminder-dispatcher", a.cfg.ReminderInterval, remind.RunOnce},
		{"delivery-claim", a.cfg.DeliveryInterval, deliver.RunOnce},
	}

	for _, job := range jobs {
		job := job
		_, err := scheduler.NewJob(
			gocron.DurationJob(job.interval),
			gocron.NewTask(func() {
				if err := job.run(ctx); err != nil {
					zap.L().Error("worker run failed",
						zap.String("worker", job.name),
						zap.Error(err))
				}
			}),
			gocron.WithName(job.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("can't register job %s: %w", job.name, err)
		}
	}
	scheduler.Start()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		if err := scheduler.Shutdown(); err != nil {
			zap.L().Error("scheduler shutdown failed", zap.Error(err))
		}
	}()

	return nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	router.Get("/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := a.pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
