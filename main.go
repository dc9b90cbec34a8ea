package main

import (
	"flag"

	"github.com/helloworldpark/tickle-upper-limit/commons"
	"github.com/helloworldpark/tickle-upper-limit/config"
	"github.com/helloworldpark/tickle-upper-limit/controller"
	"github.com/helloworldpark/tickle-upper-limit/logger"
	"github.com/helloworldpark/tickle-upper-limit/server"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	serveAddr := flag.String("serve", "", "serve HTTP on this address instead of running once, e.g. 127.0.0.1:5003")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Panic("[Main] %s", err.Error())
	}

	logger.Init(cfg.Log.Project, cfg.Log.Name)
	defer logger.Close()

	if err := cfg.Validate(); err != nil {
		logger.Panic("[Main] %s", err.Error())
	}

	general, err := controller.NewGeneral(cfg)
	if err != nil {
		logger.Panic("[Main] %s", err.Error())
	}
	defer general.Close()

	if *serveAddr != "" {
		if err := server.Serve(*serveAddr, general, commons.Now); err != nil {
			logger.Panic("[Main] %s", err.Error())
		}
		return
	}

	// 장 시작 전이면 어제, 아니면 오늘
	result, err := general.Run(commons.Now())
	if err != nil {
		logger.Panic("[Main] %s", err.Error())
	}
	if result.Written {
		logger.Info("[Main] Wrote %s", result.Path)
	} else {
		logger.Info("[Main] Skipped %s: %s", result.Date, result.Skipped)
	}
}
