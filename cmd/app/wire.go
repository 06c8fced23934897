//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/skinsight/internal/bootstrap"
	"github.com/yanqian/skinsight/internal/domain/products"
	"github.com/yanqian/skinsight/internal/domain/skinhealth"
	"github.com/yanqian/skinsight/internal/domain/weekly"
	"github.com/yanqian/skinsight/internal/infra/aicache"
	"github.com/yanqian/skinsight/internal/infra/config"
	httpiface "github.com/yanqian/skinsight/internal/interface/http"
	"github.com/yanqian/skinsight/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWeeklyConfig,
		provideProductsConfig,
		provideChatClient,
		provideAICache,
		provideCatalog,
		provideProductsLimiter,
		provideMetricsRecorder,
		skinhealth.NewService,
		weekly.NewService,
		products.NewService,
		wire.Bind(new(weekly.ChatClient), new(chatClient)),
		wire.Bind(new(products.ChatClient), new(chatClient)),
		wire.Bind(new(weekly.Cache), new(aicache.Cache)),
		wire.Bind(new(products.Cache), new(aicache.Cache)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
