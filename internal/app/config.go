package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	server "github.com/admin/astrografia/internal/adapters/primary/http"
	astroApi "github.com/admin/astrografia/internal/adapters/secondary/astroApi"
	"github.com/admin/astrografia/internal/adapters/secondary/geocoder"
	kafkaAdapter "github.com/admin/astrografia/internal/adapters/secondary/kafka"
	"github.com/admin/astrografia/internal/adapters/secondary/llm"
	"github.com/admin/astrografia/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astrografia/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/astrografia/internal/adapters/secondary/storage/s3"
	"github.com/admin/astrografia/internal/pkg/logger"
	astroUsecase "github.com/admin/astrografia/internal/usecases/astro"
)

type Config struct {
	Server   *server.Config       `envconfig:"APISERVER"`
	Log      *logger.Config       `envconfig:"LOG"`
	Postgres *pg.Config           `envconfig:"POSTGRES"`
	Redis    *redisAdapter.Config `envconfig:"REDIS"`
	S3       *s3Adapter.Config    `envconfig:"S3"`
	Kafka    *kafkaAdapter.Config `envconfig:"KAFKA"`
	AstroAPI *astroApi.Config     `envconfig:"ASTRO_API"`
	Geocoder *geocoder.Config     `envconfig:"GEOCODER"`
	LLM      *llm.Config          `envconfig:"LLM"`
	Chart    astroUsecase.Config  `envconfig:"CHART"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
