//go:build wireinject
// +build wireinject

package di

import (
	"DexPulse/pkg/config"
	"DexPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideClickHouseClient,
		ProvideReportCache,

		// Repositories
		ProvidePairSource,
		ProvideSignalPublisher,
		ProvideSignalHistory,

		// Engines and use cases
		ProvideSignalEngine,
		ProvideScanner,
		ProvideSignalUsecase,
		ProvideArbitrageUsecase,
		ProvideRefreshController,
		ProvideWatchHandler,

		// Delivery
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
