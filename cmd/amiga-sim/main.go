package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/sim"
)

func main() {
	host := flag.String("host", "localhost", "interface to listen on")
	cameraPort := flag.Int("camera-port", 50010, "camera service port")
	canbusPort := flag.Int("canbus-port", 50060, "canbus service port")
	cameraScript := flag.String("camera-health", "RUNNING", "camera health script, e.g. RUNNING:10s,UNAVAILABLE:2s")
	canbusScript := flag.String("canbus-health", "IDLE:3s,RUNNING", "canbus health script")
	views := flag.String("views", "rgb,disparity,left,right", "comma separated camera views")
	frameRate := flag.Float64("frame-rate", sim.DefaultFrameRate, "camera frame rate in Hz")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger, err := customlog.NewLogrusLogger(*logLevel, "")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	camScript, err := sim.ParseScript(*cameraScript)
	if err != nil {
		logger.Fatalf("Invalid --camera-health: %v", err)
	}
	busScript, err := sim.ParseScript(*canbusScript)
	if err != nil {
		logger.Fatalf("Invalid --canbus-health: %v", err)
	}

	camLis, err := net.Listen("tcp", net.JoinHostPort(*host, strconv.Itoa(*cameraPort)))
	if err != nil {
		logger.Fatalf("Failed to listen for camera: %v", err)
	}
	busLis, err := net.Listen("tcp", net.JoinHostPort(*host, strconv.Itoa(*canbusPort)))
	if err != nil {
		logger.Fatalf("Failed to listen for canbus: %v", err)
	}

	amiga := sim.New(sim.Options{
		CameraScript: camScript,
		CanbusScript: busScript,
		Views:        strings.Split(*views, ","),
		FrameRate:    *frameRate,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := amiga.Serve(ctx, camLis, busLis); err != nil {
		logger.Errorf("Simulator stopped: %v", err)
		os.Exit(1)
	}
	logger.Infof("Simulator exited properly")
}
