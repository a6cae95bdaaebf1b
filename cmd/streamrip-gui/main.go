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
	"github.com/tuanmtrinh/streamrip-gui/internal/ui"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.NewManager("")
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	myApp := app.NewWithID("com.tuanmtrinh.streamrip-gui")
	myWindow := myApp.NewWindow("Streamrip")
	myWindow.Resize(fyne.NewSize(900, 620))

	orch := orchestrator.New(cfg, engine.NewYTDLP(cfg, logger), logger)
	ui.NewRootUI(myWindow, orch, cfg)

	myWindow.ShowAndRun()
}
