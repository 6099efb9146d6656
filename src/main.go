package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"

	_ "Backend-Schoolhub/docs"
	"Backend-Schoolhub/src/config"
	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/database/memory"
	"Backend-Schoolhub/src/jobs"
	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/routes"
	"Backend-Schoolhub/src/seeder"
	"Backend-Schoolhub/src/services/attendance"
	"Backend-Schoolhub/src/services/fees"
	"Backend-Schoolhub/src/utils"
)

// @title        Schoolhub Attendance & Fees API
// @version      1.0
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ invalid configuration: %v", err)
	}
	log := logger.Init(cfg.LogLevel)
	utils.SetJWTSecret(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// เชื่อมต่อกับ MongoDB
	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Error connecting to the database: %v", err)
	}
	db := client.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("❌ Failed to create indexes: %v", err)
	}

	persons := database.NewPersonRepository(db)
	records := database.NewRecordRepository(db)
	ledgerRepo := database.NewLedgerRepository(client, db)

	if cfg.SeedSampleData {
		if err := seeder.SeedSampleRoster(ctx, persons); err != nil {
			log.WithError(err).Warn("⚠️ sample roster not seeded")
		}
	}

	// Redis เป็น optional: ไม่มีก็ใช้ in-process locker/session/cache แทน
	var (
		locker   attendance.Locker       = memory.NewKeyLocker()
		sessions attendance.SessionStore = memory.NewSessionStore()
		cache    fees.SummaryCache       = memory.NewSummaryCache()
		notifier fees.RecomputeNotifier
	)
	if err := database.InitRedis(ctx, cfg.RedisURI); err != nil {
		log.WithError(err).Warn("⚠️ Redis unavailable, running single-instance mode")
	}
	if database.RedisClient != nil {
		locker = database.NewRedisLocker(database.RedisLock)
		sessions = database.NewRedisSessionStore(database.RedisClient)
		cache = database.NewRedisSummaryCache(database.RedisClient, cfg.SummaryCacheTTL)
	}
	if asynqClient := database.InitAsynq(); asynqClient != nil {
		notifier = jobs.NewRecomputeNotifier(asynqClient)
	}

	ledger := attendance.NewLedger(records, attendance.LedgerConfig{
		Locker:   locker,
		Cutoff:   cfg.LateCutoff,
		Location: cfg.Location,
		Logger:   logger.Module("attendance"),
	})
	refresher := fees.NewSummaryRefresher(ledgerRepo, persons, cache, logger.Module("fees.refresher"))
	collector := fees.NewCollector(ledgerRepo, persons, fees.CollectorConfig{
		Notifier:  notifier,
		Summaries: refresher,
		Logger:    logger.Module("fees"),
	})

	if notifier == nil {
		// ไม่มี worker: ฟัง change stream เองใน process นี้ (Run subscribe ใหม่เองถ้า stream หลุด)
		go func() {
			if err := refresher.Run(ctx); err != nil {
				log.WithError(err).Warn("⚠️ summary refresher stopped")
			}
		}()
	}

	// สร้าง app instance
	app := fiber.New(fiber.Config{
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app, routes.Handlers{
		Attendance: controllers.NewAttendanceController(ledger, persons, sessions, locker),
		Fees:       controllers.NewFeesController(collector, ledgerRepo, refresher),
		Persons:    controllers.NewPersonController(persons),
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + cfg.AppURI)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppURI))); err != nil {
		log.Error(err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = database.CloseAsynq()
	_ = database.CloseRedis()
	_ = database.Disconnect(shutdownCtx)
}
