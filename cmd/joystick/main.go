package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/api"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/config"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
	"github.com/vilo159/amiga-joystick-tutorial/services"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := customlog.NewLogrusLogger(cfg.Logging.Level, cfg.Logging.LogPath)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	cameraConn, canbusConn, err := services.Dial(cfg.Amiga)
	if err != nil {
		logger.Fatalf("Failed to set up connections: %v", err)
	}
	defer cameraConn.Close()
	defer canbusConn.Close()

	app, err := services.NewApp(cfg, cameraConn, canbusConn, logger)
	if err != nil {
		logger.Fatalf("Failed to build client: %v", err)
	}

	web := api.NewApp(api.Deps{
		Config:    cfg,
		Registry:  app.Registry,
		Widget:    app.Widget,
		Video:     app.Video,
		Telemetry: app.Telemetry,
		Teleop:    app.Teleop,
		Logger:    logger.WithField("component", "api"),
		AccessLog: os.Stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in a goroutine
	go func() {
		addr := ":" + strconv.Itoa(cfg.Server.HTTPPort)
		logger.Infof("Server starting on %s (camera %s:%d, canbus %s:%d)", addr,
			cfg.Amiga.Address, cfg.Amiga.CameraPort, cfg.Amiga.Address, cfg.Amiga.CanbusPort)
		if err := web.Listen(addr); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Blocks until interrupted
	if err := app.Run(ctx); err != nil {
		logger.Errorf("Client stopped with error: %v", err)
	}

	logger.Infof("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := web.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Infof("Server exited properly")
}

// loadConfig layers defaults, the YAML file, environment and flags, in that
// order, and validates the result.
func loadConfig(args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("joystick", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional YAML configuration file")
	address := fs.String("address", "localhost", "address of the Amiga brain")
	cameraPort := fs.Int("camera-port", 0, "camera service port (required)")
	canbusPort := fs.Int("canbus-port", 0, "canbus service port (required)")
	everyN := fs.Int("stream-every-n", 1, "stream every n-th camera frame")
	httpPort := fs.Int("http-port", 8080, "port of the joystick web surface")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}

	// Only flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "address":
			cfg.Amiga.Address = *address
		case "camera-port":
			cfg.Amiga.CameraPort = *cameraPort
		case "canbus-port":
			cfg.Amiga.CanbusPort = *canbusPort
		case "stream-every-n":
			cfg.Amiga.StreamEveryN = *everyN
		case "http-port":
			cfg.Server.HTTPPort = *httpPort
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (see -h)", err)
	}
	return cfg, nil
}
