package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/mongodb"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/templates"
	"resume-builder/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Mongo            *mongo.Client
	Issuer           *auth.Issuer
	ResumesRepo      resumes.Repo
	TemplatesRepo    templates.Repo
	UsersRepo        users.Repo
	ResumesService   *resumes.Service
	TemplatesService *templates.Service
	UsersService     *users.Service
	Health           *health.Service
}

// Build connects the configured store and wires repositories, services,
// handlers and the router. A store that cannot be reached is an error.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Issuer: issuer,
		Health: health.NewService(),
	}
	if err := app.buildRepos(ctx); err != nil {
		app.Close(context.Background())
		return nil, err
	}
	app.buildServices()
	return app, nil
}

// BuildRepos connects the configured store and wires only the repositories
// and services, for command-line tools that do not serve HTTP.
func BuildRepos(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg, Health: health.NewService()}
	if err := app.buildRepos(ctx); err != nil {
		app.Close(context.Background())
		return nil, err
	}
	app.TemplatesService = templates.NewService(app.TemplatesRepo)
	return app, nil
}

func (a *App) buildRepos(ctx context.Context) error {
	switch a.Config.StoreDriver {
	case config.StorePostgres:
		return a.buildPostgres(ctx)
	case config.StoreMongo:
		return a.buildMongo(ctx)
	case config.StoreMemory, "":
		if !a.Config.IsDevLike() {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"env": a.Config.Env})
		}
		a.ResumesRepo = resumes.NewMemoryRepo()
		a.TemplatesRepo = templates.NewMemoryRepo()
		a.UsersRepo = users.NewMemoryRepo()
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", a.Config.StoreDriver)
	}
}

func (a *App) buildPostgres(ctx context.Context) error {
	if strings.TrimSpace(a.Config.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required for the postgres store")
	}
	sqlDB, err := db.Connect(ctx, a.Config.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return err
	}
	a.DB = sqlDB
	if a.Config.RunMigrations {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return err
		}
	}
	a.ResumesRepo = &resumes.PGRepo{DB: sqlDB}
	a.TemplatesRepo = &templates.PGRepo{DB: sqlDB}
	a.UsersRepo = &users.PGRepo{DB: sqlDB}
	a.Health.Register("postgres", sqlDB.PingContext)
	return nil
}

func (a *App) buildMongo(ctx context.Context) error {
	client, database, err := mongodb.Connect(ctx, a.Config.MongoURI, a.Config.MongoDatabase, mongodb.DefaultOptions())
	if err != nil {
		return err
	}
	a.Mongo = client

	resumeRepo := resumes.NewMongoRepo(database)
	templateRepo := templates.NewMongoRepo(database)
	userRepo := users.NewMongoRepo(database)
	for _, ensure := range []func(context.Context) error{
		resumeRepo.EnsureIndexes,
		templateRepo.EnsureIndexes,
		userRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	a.ResumesRepo = resumeRepo
	a.TemplatesRepo = templateRepo
	a.UsersRepo = userRepo
	a.Health.Register("mongo", func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	return nil
}

func (a *App) buildServices() {
	a.TemplatesService = templates.NewService(a.TemplatesRepo)
	a.ResumesService = resumes.NewService(a.ResumesRepo, a.TemplatesService)
	a.UsersService = users.NewService(a.UsersRepo, a.Issuer, a.Config.AdminEmails)

	a.Router = server.NewRouter(server.RouterDeps{
		Config:          a.Config,
		Verifier:        a.Issuer,
		Health:          a.Health,
		ResumeHandler:   resumes.NewHandler(a.ResumesService),
		TemplateHandler: templates.NewHandler(a.TemplatesService),
		UserHandler:     users.NewHandler(a.UsersService),
	})
	telemetry.Info("bootstrap.ready", map[string]any{
		"env":   a.Config.Env,
		"store": a.storeName(),
	})
}

func (a *App) storeName() string {
	if a.Config.StoreDriver == "" {
		return config.StoreMemory
	}
	return a.Config.StoreDriver
}

// Close releases store connections.
func (a *App) Close(ctx context.Context) {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			telemetry.Warn("bootstrap.close_db", map[string]any{"error": err})
		}
		a.DB = nil
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			telemetry.Warn("bootstrap.close_mongo", map[string]any{"error": err})
		}
		a.Mongo = nil
	}
}
