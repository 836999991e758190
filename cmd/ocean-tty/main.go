package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"ocean-fill/internal/app"
	"ocean-fill/internal/audio"
	"ocean-fill/internal/core"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	volume := flag.Float64("volume", 0.6, "chime volume between 0 and 1")
	logPath := flag.String("log", "ocean-tty.log", "file for warnings while the screen is in use")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "ocean-tty ", log.LstdFlags)

	session := app.NewSessionFromConfig(cfg, core.SystemClock{}, logger)
	session.Restore()
	defer session.Close()

	var chimes app.ChimePlayer
	if !cfg.Mute {
		player := audio.NewChimes(*volume, logger)
		if err := player.Init(); err != nil {
			logger.Printf("chimes disabled: %v", err)
		}
		defer player.Close()
		chimes = player
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tps := cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	term := app.NewTerminal(screen, session, chimes)
	if err := term.Run(ctx, time.Second/time.Duration(tps)); err != nil && ctx.Err() == nil {
		logger.Printf("terminal: %v", err)
	}
}
