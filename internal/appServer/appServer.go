package appServer

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dklimov443/carminder/config"
	repository "github.com/dklimov443/carminder/internal/database/postgres"
	"github.com/dklimov443/carminder/internal/reminder"
	"github.com/dklimov443/carminder/internal/service"
	"github.com/dklimov443/carminder/internal/transport"

	"github.com/dklimov443/carminder/pkg/email"
	"github.com/dklimov443/carminder/pkg/postgres"
	"github.com/dklimov443/carminder/pkg/redis"
	"github.com/dklimov443/carminder/pkg/scheduler"
	"github.com/dklimov443/carminder/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	carRepo := repository.NewCarRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	carService := service.NewCarService(carRepo, userRepo)
	recordService := service.NewRecordService(recordRepo, carRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startReminderScheduler(ctx, cfg, recordRepo, carRepo, userRepo)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService)
	carHandler := transport.NewCarHandler(carService)
	recordHandler := transport.NewRecordHandler(recordService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(userHandler, carHandler, recordHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")
	cancel()

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

// startReminderScheduler wires the sweep pipeline and launches the
// background loop. Any wiring problem here is logged and leaves the HTTP
// API running without reminders; the scheduler never takes the app down.
func startReminderScheduler(
	ctx context.Context,
	cfg *config.Config,
	recordRepo repository.RecordRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
) {
	var notifier reminder.Notifier
	switch {
	case cfg.Email.Enabled:
		notifier = email.NewSender(&cfg.Email)
		logrus.Info("Email notifier initialized")
	case cfg.Telegram.Enabled && cfg.Telegram.BotToken != "":
		notifier = telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		logrus.Info("Telegram notifier initialized")
	default:
		logrus.Warn("No notifier configured, reminder scheduler disabled")
		return
	}

	sweeper := reminder.NewSweeper(recordRepo, carRepo, userRepo, notifier, cfg.Reminder.SendDelay)

	var lock reminder.SweepLock = reminder.NoopLock{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		lock = reminder.NewRedisLock(redisClient, "carminder:reminder:sweep", cfg.Reminder.LockTTL)
		logrus.Info("Redis sweep lock initialized")
	}

	sched := scheduler.NewScheduler(
		reminder.Locked(lock, sweeper.Run),
		cfg.Reminder.Interval,
		cfg.Reminder.StartupDelay,
	)

	go sched.Start(ctx)
	logrus.Info("Reminder scheduler started")
}
