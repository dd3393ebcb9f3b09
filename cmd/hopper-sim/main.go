package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/hopper/game"
)

func main() {
	stageFlag := flag.String("stage", "4", "Prototype to simulate: 1-4 or gravity, lateral, slopes, rotation.")
	tuning := flag.String("tuning", "", "Optional YAML file overriding the stage's tuning.")
	script := flag.String("script", "idle:120", "Input script, e.g. \"idle:120,right:60,up:1,idle:90\".")
	trace := flag.Int("trace", 0, "Log the player state every N ticks (0 disables).")
	verbose := flag.Bool("verbose", false, "Log jumps, landings and respawns.")
	flag.Parse()

	stage, err := game.ParseStage(*stageFlag)
	if err != nil {
		log.Fatalf("Invalid -stage: %v", err)
	}
	base := game.Preset(stage)
	base.Verbose = *verbose

	settings, err := game.LoadSettings(*tuning, base)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	steps, err := ParseScript(*script)
	if err != nil {
		log.Fatalf("Invalid -script: %v", err)
	}

	input := &scriptInput{steps: steps}
	world, err := game.NewWorld(settings, input)
	if err != nil {
		log.Fatalf("Failed to build stage %s: %v", settings.Stage, err)
	}

	report := &Report{
		Stage:    settings.Stage,
		Tuning:   settings.Tuning,
		Script:   *script,
		Steps:    len(steps),
		Start:    *world.Player(),
		StepTime: Stats{Samples: make([]time.Duration, 0, Ticks(steps))},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Simulating stage %s for %d ticks...", settings.Stage, Ticks(steps))
	startTime := time.Now()

	for input.Advance() {
		stepStart := time.Now()
		world.Step(1.0 / game.TickRate)
		report.StepTime.Samples = append(report.StepTime.Samples, time.Since(stepStart))

		body := world.Player()
		report.Track(body)
		if *trace > 0 && world.Tick()%uint64(*trace) == 0 {
			log.Printf("tick %d pos=(%.1f, %.1f) vel=(%.1f, %.1f) angle=%.3f grounded=%t",
				world.Tick(), body.Pos.X, body.Pos.Y, body.Vel.X, body.Vel.Y, body.Angle, body.Grounded)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Ticks = world.Tick()
	report.End = *world.Player()
	report.Events = *world.Events()
	report.Systems = world.Update.Stats().Systems
	report.StepTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println()
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
}
