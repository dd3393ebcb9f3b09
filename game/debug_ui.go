package game

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hopper/ecs"
	"github.com/plus3/hopper/ecs/debugui"
	debugui_ebiten "github.com/plus3/hopper/ecs/debugui/ebiten"
)

// EnableOverlay attaches the Dear ImGui debug windows. backend must already
// own the window, see debugui_ebiten.NewImguiBackend.
func (g *Game) EnableOverlay(backend debugui_ebiten.ImguiBackend) {
	imgui.CurrentIO().SetIniFilename("")

	w := g.World
	storage := w.Storage
	g.overlay = ecs.NewSingleton(storage, backend)
	ecs.NewSingleton(storage, debugui.ImguiInputState{})

	w.Update.Register(&debugui.ImguiSystem{})

	spawnPlayerWindow(w)
	spawnTuningWindow(w)
	storage.Spawn(debugui.ImguiItem{Render: (&debugui.SchedulerStatsWindow{
		Title:     "Systems",
		Scheduler: w.Update,
		Storage:   storage,
		History:   debugui.NewFrameHistory(120),
	}).Render})
}

func spawnPlayerWindow(w *World) {
	w.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			body := w.Player()
			if body == nil {
				return
			}
			events := w.Events()

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(200, 220), imgui.CondOnce)

			if imgui.BeginV("Player", nil, 0) {
				imgui.Text(fmt.Sprintf("Pos: %.1f, %.1f", body.Pos.X, body.Pos.Y))
				imgui.Text(fmt.Sprintf("Vel: %.1f, %.1f", body.Vel.X, body.Vel.Y))
				imgui.Text(fmt.Sprintf("Angle: %.3f  w: %.2f", body.Angle, body.AngularVel))
				imgui.Text(fmt.Sprintf("Grounded: %t", body.Grounded))
				imgui.Separator()
				imgui.Text(fmt.Sprintf("Jumps: %d  Landings: %d", events.Jumps, events.Landings))
				imgui.Text(fmt.Sprintf("Respawns: %d", events.Respawns))
				if c := events.Last; c.Hit {
					imgui.Text(fmt.Sprintf("Segment: %d  Depth: %.2f", c.Segment, c.Depth))
					imgui.Text(fmt.Sprintf("Normal: %.2f, %.2f", c.Normal.X, c.Normal.Y))
				}
				if imgui.Button("Reset") {
					body.Reset(ecs.ReadComponent[Player](w.Storage, w.player).Spawn)
				}
			}
			imgui.End()
		},
	})
}

func spawnTuningWindow(w *World) {
	w.Storage.Spawn(debugui.ImguiItem{
		Render: func() {
			settings := w.Settings()

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 270), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(260, 200), imgui.CondOnce)

			if imgui.BeginV("Tuning", nil, 0) {
				imgui.Text(fmt.Sprintf("Stage: %s", settings.Stage))
				before := settings.Tuning
				if debugui.EditStruct("tuning", &settings.Tuning) {
					if err := settings.Tuning.Validate(); err != nil {
						settings.Tuning = before
					}
				}
				imgui.Checkbox("Draw contacts", &settings.Debug)
				imgui.Checkbox("Verbose log", &settings.Verbose)
			}
			imgui.End()
		},
	})
}
