package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	server "github.com/admin/astrografia/internal/adapters/primary/http"
	astroController "github.com/admin/astrografia/internal/adapters/primary/http/controllers/astro"
	healthcheckController "github.com/admin/astrografia/internal/adapters/primary/http/controllers/healthcheck"
	interpretController "github.com/admin/astrografia/internal/adapters/primary/http/controllers/interpret"
	metricsController "github.com/admin/astrografia/internal/adapters/primary/http/controllers/metrics"
	perspectivesController "github.com/admin/astrografia/internal/adapters/primary/http/controllers/perspectives"
	reportsController "github.com/admin/astrografia/internal/adapters/primary/http/controllers/reports"
	kafkaConsumerAdapter "github.com/admin/astrografia/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/admin/astrografia/internal/adapters/primary/kafka/handlers"
	astroApiAdapter "github.com/admin/astrografia/internal/adapters/secondary/astroApi"
	"github.com/admin/astrografia/internal/adapters/secondary/geocoder"
	kafkaAdapter "github.com/admin/astrografia/internal/adapters/secondary/kafka"
	"github.com/admin/astrografia/internal/adapters/secondary/llm"
	"github.com/admin/astrografia/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/astrografia/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astrografia/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/astrografia/internal/adapters/secondary/storage/s3"
	"github.com/admin/astrografia/internal/pkg/metrics"
	"github.com/admin/astrografia/internal/ports/cache"
	"github.com/admin/astrografia/internal/ports/kafka"
	"github.com/admin/astrografia/internal/ports/repository"
	"github.com/admin/astrografia/internal/ports/service"
	"github.com/admin/astrografia/internal/ports/storage"
	perspectiveRepo "github.com/admin/astrografia/internal/repository/perspective"
	reportRepo "github.com/admin/astrografia/internal/repository/report"
	astroApiService "github.com/admin/astrografia/internal/services/astroApi"
	"github.com/admin/astrografia/internal/services/geocoding"
	jobScheduler "github.com/admin/astrografia/internal/services/jobs"
	astroUsecase "github.com/admin/astrografia/internal/usecases/astro"
	interpretUsecase "github.com/admin/astrografia/internal/usecases/interpret"
	perspectiveUsecase "github.com/admin/astrografia/internal/usecases/perspective"
	reportUsecase "github.com/admin/astrografia/internal/usecases/report"
)

const cachePurgeInterval = 10 * time.Minute

type Dependencies struct {
	DB             *pg.DB // nil без Postgres
	HTTPServer     *http.Server
	Cache          cache.Cache
	KafkaProducer  *kafkaAdapter.Producer
	KafkaConsumer  *kafkaConsumerAdapter.Consumer
	JobScheduler   *jobScheduler.Scheduler
	ReportsService *reportUsecase.Service
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	m, err := metrics.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	db, err := a.initPostgres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	externalServices := a.initExternalServices(m)

	astroService, err := astroUsecase.New(
		a.Cfg.Chart,
		externalServices.AstroAPI, // может быть nil
		externalServices.Geocoder,
		externalServices.Cache,
		m,
		a.Log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init astro usecase: %w", err)
	}

	interpretService := interpretUsecase.New(externalServices.LLM, externalServices.Cache, m, a.Log)

	controllers := []server.Controller{
		metricsController.New(m),
		astroController.New(astroService, a.Log),
		interpretController.New(interpretService, a.Log),
	}

	deps := &Dependencies{
		DB:    db,
		Cache: externalServices.Cache,
	}

	if db != nil {
		repos := a.initRepositories(db)

		perspectiveService := perspectiveUsecase.New(repos.Perspective, interpretService, a.Log)
		controllers = append(controllers, perspectivesController.New(perspectiveService, a.Log))

		producer := a.initKafkaProducer()
		var queue kafka.IKafkaProducer
		if producer != nil {
			queue = producer
			deps.KafkaProducer = producer
		}

		deps.ReportsService = reportUsecase.New(
			repos.Report,
			astroService,
			interpretService,
			queue,                  // может быть nil
			externalServices.Files, // может быть nil
			m,
			a.Log,
		)
		controllers = append(controllers, reportsController.New(deps.ReportsService, a.Log))

		if producer != nil {
			deps.KafkaConsumer = a.initKafkaConsumer(deps.ReportsService)
		}
	} else {
		a.Log.Warn("postgres is disabled, perspectives and reports are not available")
	}

	controllers = append(controllers, healthcheckController.New(a.readinessChecks(db, externalServices.Redis), a.Log))

	deps.HTTPServer = server.NewHTTPServer(a.Cfg.Server, a.Log, m, controllers...)
	deps.JobScheduler = a.initJobScheduler(m, astroService, externalServices.Cache)

	return deps, nil
}

func (a *App) initPostgres(ctx context.Context) (*pg.DB, error) {
	if !a.Cfg.Postgres.Enabled {
		return nil, nil
	}

	conn, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(ctx, conn, a.Log); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return pg.NewDB(conn), nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	Perspective repository.IPerspectiveRepo
	Report      repository.IReportRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *pg.DB) *repositories {
	return &repositories{
		Perspective: perspectiveRepo.New(db, a.Log),
		Report:      reportRepo.New(db, a.Log),
	}
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	AstroAPI service.IAstroAPIService
	Geocoder service.IGeocodingService
	LLM      service.ILLMService
	Cache    cache.Cache
	Redis    *redisAdapter.Client
	Files    storage.IS3Client
}

// initExternalServices инициализирует внешние сервисы; недоступные опциональные отключаются с предупреждением
func (a *App) initExternalServices(m *metrics.Collector) *externalServices {
	services := &externalServices{}

	// AstroAPI - без ключа карты строятся приближённо
	if a.Cfg.AstroAPI.Enabled() {
		astroAPIClient := astroApiAdapter.NewClient(a.Cfg.AstroAPI, a.Log)
		services.AstroAPI = astroApiService.New(astroAPIClient)
	} else {
		a.Log.Warn("astro API key is missing, charts will use the approximation")
	}

	// Геокодирование: OpenCage при наличии ключа, затем Nominatim
	var providers []service.IGeocoder
	if a.Cfg.Geocoder.OpenCageKey != "" {
		providers = append(providers, geocoder.NewOpenCage(a.Cfg.Geocoder))
	}
	providers = append(providers, geocoder.NewNominatim(a.Cfg.Geocoder))
	services.Geocoder = geocoding.New(a.Log, m, providers...)

	if a.Cfg.LLM.Enabled() {
		services.LLM = llm.NewClient(a.Cfg.LLM, a.Log)
	} else {
		a.Log.Warn("llm key is missing, interpretations fall back to canned texts")
	}

	// Redis Cache - опциональный, иначе локальный кэш процесса
	if a.Cfg.Redis.Enabled {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, continuing with in-memory cache", "error", err)
		} else {
			services.Redis = redisAdapter.NewClient(redisClient, a.Cfg.Redis.KeyPrefix)
			services.Cache = services.Redis
			a.Log.Info("redis cache connected successfully")
		}
	}
	if services.Cache == nil {
		services.Cache = inmemory.NewTTLCache()
	}

	// S3 - опциональный, иначе HTML отчётов хранится в БД
	if a.Cfg.S3.Enabled {
		minioClient, err := a.Cfg.S3.NewClient()
		if err != nil {
			a.Log.Warn("failed to init s3 storage, reports will be stored inline", "error", err)
		} else {
			services.Files = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("s3 storage connected successfully", "bucket", a.Cfg.S3.Bucket)
		}
	}

	return services
}

func (a *App) initKafkaProducer() *kafkaAdapter.Producer {
	if !a.Cfg.Kafka.Enabled {
		return nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka producer, reports will be processed in-process", "error", err)
		return nil
	}
	return producer
}

func (a *App) initKafkaConsumer(reports kafkaHandlers.ReportProcessor) *kafkaConsumerAdapter.Consumer {
	handler := kafkaHandlers.NewReportRequestHandler(reports, a.Log)

	consumer, err := kafkaConsumerAdapter.NewConsumer(a.Cfg.Kafka, handler, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka consumer", "error", err)
		return nil
	}
	return consumer
}

// readinessChecks подключённые зависимости для /ready
func (a *App) readinessChecks(db *pg.DB, redisClient *redisAdapter.Client) map[string]healthcheckController.Pinger {
	checks := map[string]healthcheckController.Pinger{}
	if db != nil {
		checks["postgres"] = db
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}
	return checks
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(
	m *metrics.Collector,
	astroService *astroUsecase.Service,
	cacheClient cache.Cache,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, m)

	scheduler.Register(jobScheduler.NewPositionsUpdater(astroService, a.Log))
	a.Log.Info("positions updater job registered")

	if local, ok := cacheClient.(*inmemory.TTLCache); ok {
		scheduler.Register(jobScheduler.NewCachePurger(local, cachePurgeInterval, a.Log))
		a.Log.Info("cache purger job registered")
	}

	return scheduler
}
