package web

import (
	"log"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/seicast/seicast/internal/controllers"
	"github.com/seicast/seicast/internal/controllers/streammiddlewares"
	"github.com/seicast/seicast/internal/entities"
	"github.com/seicast/seicast/internal/mapper"
	"github.com/seicast/seicast/internal/web/handlers"
)

func Dependencies() fx.Option {
	var c entities.Config
	err := envconfig.Process("seicast", &c)
	if err != nil {
		log.Fatal(err.Error())
	}

	return fx.Options(
		// HTTP Server
		fx.Provide(NewHTTPServer),

		// HTTP router
		fx.Provide(NewServeMux),

		// HTTP handlers
		fx.Provide(handlers.NewAboutHandler),
		fx.Provide(handlers.NewInjectHandler),
		fx.Provide(handlers.NewExtractHandler),
		fx.Provide(handlers.NewExtractMpegTSHandler),

		// Controllers
		fx.Provide(controllers.NewSEIInjectorController),
		fx.Provide(controllers.NewSEIExtractorController),

		// Stream middlewares
		fx.Provide(streammiddlewares.NewSEIMetadata),

		// Mappers
		fx.Provide(mapper.NewMapper),

		// Logging, Config constructors
		fx.Provide(func() *zap.SugaredLogger {
			logger, _ := zap.NewProduction()
			return logger.Sugar()
		}),
		fx.Provide(func() *entities.Config {
			return &c
		}),
	)
}
