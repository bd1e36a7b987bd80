package main

import (
	"context"
	"log"

	"hotel/config"
	"hotel/jobs"
	"hotel/routes"
	"hotel/services"
	"hotel/services/logger"
	"hotel/services/report"
	"hotel/store"
)

func openStore(cfg *config.Config, log logger.Logger) (store.Store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Info("Đang dùng memory store, dữ liệu sẽ mất khi tắt server")
		return store.NewMemoryStore(), nil
	}

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	return store.NewGormStore(db), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLogger.Sync()

	st, err := openStore(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	rdb, err := config.ConnectRedis(context.Background(), cfg.Redis)
	if err != nil {
		appLogger.Error("Không kết nối được Redis, chạy không có cache: %v", err)
		rdb = nil
	}
	cache := services.NewRoomCache(rdb, cfg.RoomCacheTTL, appLogger)

	roomService := services.NewRoomService(services.RoomServiceOptions{
		Store:  st,
		Cache:  cache,
		Logger: appLogger,
	})
	guestService := services.NewGuestService(services.GuestServiceOptions{
		Store:  st,
		Logger: appLogger,
	})
	reservationService := services.NewReservationService(services.ReservationServiceOptions{
		Store:  st,
		Cache:  cache,
		Logger: appLogger,
	})

	router, c := config.InitApp(cfg, appLogger)

	checkoutCron := cfg.Jobs.CheckoutCron
	if !cfg.Jobs.CheckoutEnabled {
		checkoutCron = ""
	}
	if err := jobs.InitCronJobs(c, checkoutCron, reservationService, appLogger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer c.Stop()

	routes.SetupRoutes(router, routes.Services{
		Rooms:        roomService,
		Guests:       guestService,
		Reservations: reservationService,
		Occupancy:    report.NewOccupancyReporter(st),
	})

	appLogger.Info("Server starting on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
