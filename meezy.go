//go:build !cli
// +build !cli

package main

import (
	"log"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"meezy.GO/config"
	"meezy.GO/core/auth"

	"meezy.GO/api"
	_ "meezy.GO/api/cart"
	_ "meezy.GO/api/checkout"
	_ "meezy.GO/api/customer"
	_ "meezy.GO/api/media"
	_ "meezy.GO/api/search"
	_ "meezy.GO/api/stats"

	storageRepo "meezy.GO/model/repository/storage"
	"meezy.GO/service/backend"
	cartService "meezy.GO/service/cart"
	"meezy.GO/service/catalog"
	customerService "meezy.GO/service/customer"
	mediaService "meezy.GO/service/media"
	orderService "meezy.GO/service/order"
	"meezy.GO/service/pos"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.AppConfig

	config.InitRedis()
	redisStatus := "Redis not configured, shared snapshot cache disabled."
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil
			redisStatus = "Redis configured but not reachable, shared snapshot cache disabled."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to open register store: %v", err)
	}
	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("register store connection failed: %v", err)
	}
	if err := config.RunMigrations(db); err != nil {
		log.Fatalf("register store migration failed: %v", err)
	}
	log.Println("Register store ready.")

	client := backend.NewClient(cfg.BackendURL)
	resolver := catalog.NewResolver(client)
	resolver.SetSnapshotLimit(cfg.SnapshotLimit)
	resolver.SetSnapshotTTL(cfg.SnapshotTTL)
	if config.RedisClient != nil {
		resolver.SetSharedCache(catalog.NewRedisSnapshotCache(config.RedisClient))
	}

	repo := storageRepo.NewStorageRepository(db)
	store := cartService.NewStore(repo)

	services := &api.Services{
		DB:        db,
		Backend:   client,
		Catalog:   resolver,
		Customers: customerService.NewResolver(client),
		Cart:      store,
		Register:  pos.NewController(store, resolver, nil),
		Orders:    orderService.NewService(store, client, repo),
		Media:     mediaService.NewService(),
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())

	api.ApplyModules(apiGroup, services)
	api.ApplyRoutes(e, services)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("%s serving on :%s (backend %s)", cfg.AppName, port, cfg.BackendURL)
	e.Logger.Fatal(e.Start(":" + port))
}
