package app

import (
	"context"
	"errors"
	"log"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database"
	"skill-swap/internal/database/migration"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/infrastructure/cache"
	"skill-swap/internal/infrastructure/persistence/postgres"
	"skill-swap/internal/pkg/jwt"
	"skill-swap/internal/repository"
	"skill-swap/internal/usecase"
	ucauth "skill-swap/internal/usecase/auth"
	"skill-swap/internal/ws"
	"skill-swap/migrations"
)

// Container owns the process-wide dependencies. Close releases them in reverse
// order of construction.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   *jwt.HMACService

	Users    *postgres.UserRepository
	Profiles *repository.PostgresProfileRepository

	Auth     *usecase.Auth
	Profile  *usecase.Profile
	Matching *usecase.Matching

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: logger}
	if runner.Dir == "" {
		runner.FS = migrations.FS
	}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Hub = ws.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	c.stopHub = stopHub
	go c.Hub.Run(hubCtx)

	c.JWT = jwt.NewHMACService(cfg.JWT)
	c.Users = postgres.NewUserRepository(db)
	c.Profiles = repository.NewPostgresProfileRepository(db)

	c.Auth = usecase.NewAuthUsecase(ucauth.NewService(c.Users), c.Users, c.JWT)
	c.Profile = usecase.NewProfileUsecase(c.Profiles, c.Cache, c.Hub, logger)
	c.Matching = usecase.NewMatchingUsecase(c.Profiles, c.Cache, cfg.Redis.TTL, logger)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
