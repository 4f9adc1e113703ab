// FilePath: cmd/main.go
package main

import (
	"fmt"
	"log"
	"os"

	tm "github.com/buger/goterm"
	"github.com/joho/godotenv"
	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/config"
	"github.com/urbanclimate/airwatch/internal/server"
)

func main() {
	// Clear console and draw logo
	ClearConsole()
	DrawLogo()
	// Initialize version info
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting AirWatch Server v%s", nuts.GetVersion())

	// Load .env first so viper sees the variables
	if err := godotenv.Load(); err == nil {
		nuts.L.Infof("[Main] Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create and start server
	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen and draws the logo.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"    ___    _      _       __      __       __  ",
		"   /   |  (_)____| |     / /___ _/ /______/ /_ ",
		"  / /| | / / ___/ | /| / / __ `/ __/ ___/ __ \\",
		" / ___ |/ / /   | |/ |/ / /_/ / /_/ /__/ / / /",
		"/_/  |_/_/_/    |__/|__/\\__,_/\\__/\\___/_/ /_/ ",
		"..............................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
