//go:build wireinject
// +build wireinject

package di

import (
	"csd/internal"
	"csd/internal/comments"
	"csd/internal/controllers"
	"csd/internal/jobs"
	"csd/internal/providers"
	"csd/internal/schedule"
	"csd/internal/services"
	"csd/internal/stream"
	"csd/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewHttpClientProvider,
		providers.NewAuthProvider,

		schedule.NewStore,
		schedule.NewSource,
		schedule.NewReconciler,
		stream.NewResolver,
		wire.Bind(new(stream.ResolverInterface), new(*stream.Resolver)),
		comments.NewFormatter,
		comments.NewStore,
		services.NewCommentService,
		wire.Bind(new(services.CommentServiceInterface), new(*services.CommentService)),
		wire.Bind(new(jobs.EvictorInterface), new(*services.CommentService)),
		jobs.NewScheduler,

		controllers.NewCommentController,
		controllers.NewAdminController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
