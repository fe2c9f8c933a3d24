package uplinkcmd

import (
	"os"

	"github.com/uplink-social/uplink"
	"github.com/uplink-social/uplink/config"
	"github.com/uplink-social/uplink/core"

	_ "github.com/uplink-social/uplink/api"
	_ "github.com/uplink-social/uplink/service"

	"go.uber.org/zap"
)

func Main() {
	cfg, err := config.NewManager()
	logger := core.NewLogger(cfg)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, err := core.NewContext(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create context", zap.Error(err))
	}

	err = cfg.Init()
	if err != nil {
		logger.Fatal("Failed to initialize config", zap.Error(err))
	}

	logger.SetLevelFromConfig()

	uplink.NewActiveApp(ctx)

	err = uplink.Init()
	if err != nil {
		logger.Fatal("Failed to initialize app", zap.Error(err))
		os.Exit(core.ExitCodeFailedStartup)
	}

	err = uplink.Start()
	if err != nil {
		logger.Error("Failed to start app", zap.Error(err))
		os.Exit(core.ExitCodeFailedStartup)
	}

	trapSignals()

	err = uplink.Serve()
	if err != nil {
		logger.Error("Failed to serve app", zap.Error(err))
		os.Exit(core.ExitCodeFailedStartup)
	}
}
