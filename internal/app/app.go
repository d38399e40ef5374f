package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fsdevblog/bank-ledger/internal/config"
	"github.com/fsdevblog/bank-ledger/internal/ledger"
	"github.com/fsdevblog/bank-ledger/internal/seed"
	"github.com/fsdevblog/bank-ledger/internal/service"
	"github.com/fsdevblog/bank-ledger/internal/transport/api"
)

const readHeaderTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// Run поднимает http сервер и блокируется до сигнала SIGINT/SIGTERM или ошибки сервера.
// При остановке по сигналу возвращает context.Canceled.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.run(notifyCtx)
}

func (a *App) run(ctx context.Context) error {
	a.Logger.Infof("Starting app with config: %+v", a.Config)

	handler, err := a.buildHandler()
	if err != nil {
		return fmt.Errorf("app run: %s", err.Error())
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Infof("listening on %s", a.Config.RunAddress)
		if runErr := server.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", runErr)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return fmt.Errorf("http server shutdown: %w", shutdownErr)
		}
		return nil
	})

	if waitErr := g.Wait(); waitErr != nil {
		return waitErr
	}
	return ctx.Err() //nolint:wrapcheck
}

// buildHandler собирает реестр из seed файла и списка пользователей из конфигурации.
func (a *App) buildHandler() (http.Handler, error) {
	data, err := seed.Load(a.Config.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	data.Merge(a.Config.KnownUsers)

	l, err := ledger.New(data.DomainAccounts(), data.Usernames)
	if err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}
	a.Logger.WithFields(logrus.Fields{
		"accounts":  len(data.Accounts),
		"usernames": len(data.Usernames),
	}).Info("ledger initialized")

	router, err := api.New(api.RouterArgs{
		Logger:        a.Logger,
		LedgerService: service.NewLedgerService(l, a.Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("init router: %w", err)
	}
	return router, nil
}
