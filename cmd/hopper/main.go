package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/hopper/ecs/debugui/ebiten"
	"github.com/plus3/hopper/game"
)

func main() {
	stageFlag := flag.String("stage", "4", "Prototype to run: 1-4 or gravity, lateral, slopes, rotation.")
	tuning := flag.String("tuning", "", "Optional YAML file overriding the stage's tuning.")
	debug := flag.Bool("debug", false, "Draw contacts and open the ImGui overlay.")
	verbose := flag.Bool("verbose", false, "Log jumps, landings and respawns.")
	flag.Parse()

	stage, err := game.ParseStage(*stageFlag)
	if err != nil {
		log.Fatalf("Invalid -stage: %v", err)
	}

	base := game.Preset(stage)
	base.Debug = *debug
	base.Verbose = *verbose

	settings, err := game.LoadSettings(*tuning, base)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	g, err := game.NewGame(settings)
	if err != nil {
		log.Fatalf("Failed to build stage %s: %v", settings.Stage, err)
	}

	title := "hopper - " + settings.Stage.String()
	if settings.Debug {
		g.EnableOverlay(debugui_ebiten.NewImguiBackend(title, game.ScreenWidth, game.ScreenHeight))
	} else {
		ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
		ebiten.SetWindowTitle(title)
	}

	if settings.Verbose {
		log.Printf("Running stage %s with %+v", settings.Stage, settings.Tuning)
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
