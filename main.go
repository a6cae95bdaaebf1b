package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tuanmtrinh/streamrip-gui/internal/config"
	"github.com/tuanmtrinh/streamrip-gui/internal/engine"
	"github.com/tuanmtrinh/streamrip-gui/internal/orchestrator"
	"github.com/tuanmtrinh/streamrip-gui/internal/platform"
	"github.com/tuanmtrinh/streamrip-gui/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.tuanmtrinh.streamrip-gui"
	AppName = "Streamrip"

	WindowWidth  = 900
	WindowHeight = 620
)

func main() {
	// Optional .env, used mainly to set SR_GUI_CONFIG or SR_GUI_PORTABLE
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting", zap.String("app", AppName), zap.String("version", version))

	cfg, err := config.NewManager("")
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	logger.Info("config loaded", zap.String("path", cfg.Path()))

	if folder := cfg.OutputFolder(); folder != "" {
		if err := platform.EnsureDir(folder); err != nil {
			logger.Warn("ensure output folder", zap.String("folder", folder), zap.Error(err))
		}
	}

	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	eng := engine.NewYTDLP(cfg, logger)
	orch := orchestrator.New(cfg, eng, logger)

	ui.NewRootUI(myWindow, orch, cfg)

	myWindow.ShowAndRun()
}
