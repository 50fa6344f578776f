// Command server runs the taskboard HTTP API.
//
//	@title						Taskboard API
//	@version					1.0
//	@description				Multi-project Kanban board with per-project roles and a WIP limit.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/sgsm/taskboard/docs"
	"github.com/sgsm/taskboard/internal/api"
	"github.com/sgsm/taskboard/internal/core/ports"
	"github.com/sgsm/taskboard/internal/core/service"
	"github.com/sgsm/taskboard/internal/infrastructure/config"
	mongodb "github.com/sgsm/taskboard/internal/infrastructure/db/mongo"
	redisdb "github.com/sgsm/taskboard/internal/infrastructure/db/redis"
	"github.com/sgsm/taskboard/internal/infrastructure/db/sqlite"
	"github.com/sgsm/taskboard/internal/infrastructure/http/handlers"
	"github.com/sgsm/taskboard/internal/infrastructure/lock"
	"github.com/sgsm/taskboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// storage is the set of repositories the services run on, whichever driver
// backs them.
type storage struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	members  ports.MembershipDirectory
	tasks    ports.TaskRepository
	comments ports.CommentRepository
	close    func(context.Context) error
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "taskboard",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.Check{}

	store, err := openStorage(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("closing storage")
		}
	}()

	locker, closeLocker, err := openLocker(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeLocker()

	authService := service.NewAuthService(store.users, cfg.JWTSecret, cfg.TokenTTL)
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	board := service.NewTaskBoard(store.tasks, store.users, store.projects, store.members, locker, log)
	projects := service.NewProjectService(store.projects, store.members, store.users, store.tasks, store.comments, locker, log)
	comments := service.NewCommentService(store.comments, store.projects, store.members, log)
	users := service.NewUserService(store.users, store.members, log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Board:     board,
		Projects:  projects,
		Comments:  comments,
		Users:     users,
		JWTSecret: cfg.JWTSecret,
		Checks:    checks,
		Log:       log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("storage", cfg.Storage.Driver).
			Str("lock", cfg.Lock.Driver).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger, checks map[string]handlers.Check) (*storage, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		st, err := sqlite.Open(cfg.SQLite.Path, log)
		if err != nil {
			return nil, err
		}
		checks["sqlite"] = handlers.PingCheck(st)
		return &storage{
			users:    st.Users(),
			projects: st.Projects(),
			members:  st.Memberships(),
			tasks:    st.Tasks(),
			comments: st.Comments(),
			close:    func(context.Context) error { return st.Close() },
		}, nil
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		repos := mongodb.NewRepositories(db)
		if err := repos.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		checks["mongo"] = handlers.MongoCheck(db)
		return &storage{
			users:    repos.Users,
			projects: repos.Projects,
			members:  repos.Memberships,
			tasks:    repos.Tasks,
			comments: repos.Comments,
			close:    client.Disconnect,
		}, nil
	}
}

func openLocker(ctx context.Context, cfg *config.Config, log zerolog.Logger, checks map[string]handlers.Check) (ports.ProjectLocker, func(), error) {
	if cfg.Lock.Driver != "redis" {
		return lock.NewLocal(0), func() {}, nil
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}
	checks["redis"] = handlers.RedisCheck(rdb)
	return redisdb.NewProjectLocker(rdb, cfg.Lock.TTL, log), func() { _ = rdb.Close() }, nil
}
