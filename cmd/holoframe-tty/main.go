// Package main is the entry point for the holoframe terminal viewer.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/config"
	"github.com/Faultbox/holoframe/internal/logger"
	"github.com/Faultbox/holoframe/internal/viewer/terminal"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The screen belongs to tcell, so logs only go to a file
	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = filepath.Join(config.DataDir(), "holoframe-tty.log")
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(logFile), false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Terminal error: %v\n", err)
		os.Exit(1)
	}

	v, err := terminal.New(cfg, screen)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
		os.Exit(1)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	stop := make(chan struct{})
	go func() {
		<-sigs
		close(stop)
	}()

	err = v.Run(stop)
	v.Close()
	if err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}
