//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"ocean-fill/internal/app"
	"ocean-fill/internal/audio"
	"ocean-fill/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	volume := flag.Float64("volume", 0.6, "chime volume between 0 and 1")
	flag.Parse()

	session := app.NewSessionFromConfig(cfg, core.SystemClock{}, log.Default())
	if session.Restore() {
		log.Printf("restored progress: %s", session.ProgressText())
	}
	defer session.Close()

	var chimes app.ChimePlayer
	if !cfg.Mute {
		player := audio.NewChimes(*volume, log.Default())
		if err := player.Init(); err != nil {
			log.Printf("chimes disabled: %v", err)
		}
		defer player.Close()
		chimes = player
	}

	game := app.New(session, chimes, log.Default())
	size := session.Engine().Size()

	ebiten.SetWindowTitle("Fill the Ocean")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W, size.H)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
