package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := loadConfig([]string{"--camera-port", "50010", "--canbus-port=50060", "--stream-every-n", "3", "--address", "10.95.76.10"})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Amiga.Address != "10.95.76.10" || cfg.Amiga.CameraPort != 50010 || cfg.Amiga.CanbusPort != 50060 {
		t.Errorf("Unexpected amiga config: %+v", cfg.Amiga)
	}
	if cfg.Amiga.StreamEveryN != 3 {
		t.Errorf("Expected every n 3, got %d", cfg.Amiga.StreamEveryN)
	}
	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("Expected default http port, got %d", cfg.Server.HTTPPort)
	}
}

func TestLoadConfigRequiresPorts(t *testing.T) {
	if _, err := loadConfig([]string{"--camera-port", "50010"}); err == nil {
		t.Error("Expected error without --canbus-port")
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joystick_config.yaml")
	content := "amiga:\n  address: from-file\n  camera_port: 1\n  canbus_port: 2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig([]string{"--config", path, "--canbus-port", "3"})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Amiga.Address != "from-file" {
		t.Errorf("Unset flag must not override the file, got %s", cfg.Amiga.Address)
	}
	if cfg.Amiga.CanbusPort != 3 {
		t.Errorf("Expected flag to win, got %d", cfg.Amiga.CanbusPort)
	}
}
