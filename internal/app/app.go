package app

import (
	"context"
	"eduverse_backend/internal/config"
	"eduverse_backend/internal/controller"
	"eduverse_backend/internal/repository"
	"eduverse_backend/internal/service"
	"eduverse_backend/internal/util"
	"eduverse_backend/pkg/configwatcher"
	"eduverse_backend/pkg/database"
	"eduverse_backend/pkg/logger"
	"eduverse_backend/pkg/monitoring"
	"eduverse_backend/pkg/security"
	"eduverse_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	enrollment *repository.EnrollmentRepository
	progress   *repository.ProgressRepository
	evaluation *repository.EvaluationRepository
	assignment *repository.AssignmentRepository
	chat       *repository.ChatRepository
	cache      *repository.CacheRepository
}

type services struct {
	auth           *service.AuthService
	storage        *service.StorageService
	inference      *service.InferenceService
	user           *service.UserService
	course         *service.CourseService
	leaderboard    *service.LeaderboardService
	enrollment     *service.EnrollmentService
	quiz           *service.QuizService
	roadmap        *service.RoadmapService
	recommendation *service.RecommendationService
	assignment     *service.AssignmentService
	chat           *service.ChatService
}

type controllers struct {
	auth           *controller.AuthController
	user           *controller.UserController
	course         *controller.CourseController
	enrollment     *controller.EnrollmentController
	quiz           *controller.QuizController
	leaderboard    *controller.LeaderboardController
	roadmap        *controller.RoadmapController
	recommendation *controller.RecommendationController
	assignment     *controller.AssignmentController
	chat           *controller.ChatController
	admin          *controller.AdminController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		progress:   repository.NewProgressRepository(db),
		evaluation: repository.NewEvaluationRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		chat:       repository.NewChatRepository(db),
		cache:      repository.NewCacheRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.storage = service.NewStorageService(cfg)
	s.inference = service.NewInferenceService(cfg.Inference)
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.inference.Reload(newCfg.Inference)
	})

	s.course = service.NewCourseService(repos.course, repos.user, s.storage, s.inference)
	s.leaderboard = service.NewLeaderboardService(
		repos.course,
		repos.enrollment,
		repos.user,
		repos.assignment,
		repos.cache,
		cfg.Cache,
	)
	s.user = service.NewUserService(repos.user, s.storage, s.leaderboard)
	s.enrollment = service.NewEnrollmentService(repos.user, repos.course, repos.enrollment, s.leaderboard)
	s.quiz = service.NewQuizService(
		repos.course,
		repos.enrollment,
		repos.progress,
		repos.evaluation,
		s.inference,
	)
	s.roadmap = service.NewRoadmapService(
		repos.user,
		repos.course,
		repos.evaluation,
		repos.progress,
		s.inference,
	)
	s.recommendation = service.NewRecommendationService(
		repos.user,
		repos.course,
		s.inference,
		repos.cache,
		cfg.Cache,
	)
	s.assignment = service.NewAssignmentService(
		repos.assignment,
		repos.course,
		repos.enrollment,
		repos.progress,
		s.storage,
		s.leaderboard,
	)
	s.chat = service.NewChatService(repos.chat, repos.user)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		user:           controller.NewUserController(s.user),
		course:         controller.NewCourseController(s.course),
		enrollment:     controller.NewEnrollmentController(s.enrollment),
		quiz:           controller.NewQuizController(s.quiz),
		leaderboard:    controller.NewLeaderboardController(s.leaderboard),
		roadmap:        controller.NewRoadmapController(s.roadmap),
		recommendation: controller.NewRecommendationController(s.recommendation),
		assignment:     controller.NewAssignmentController(s.assignment),
		chat:           controller.NewChatController(s.chat),
		admin:          controller.NewAdminController(s.user, s.course, s.assignment),
		health:         controller.NewHealthController(db, repos.cache),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate || cfg.Server.Mode != "release")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(context.Background(), &cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	if a.Config.FilePath == "" || len(a.configCallbacks) == 0 {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.FilePath, func(newCfg *config.Config) {
			for _, callback := range a.configCallbacks {
				callback(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	a.watchConfig(watchCtx)

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// wait for SIGINT/SIGTERM, then give in-flight requests 5 seconds
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
