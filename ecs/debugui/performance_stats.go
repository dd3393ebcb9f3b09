package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hopper/ecs"
)

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Push records one frame duration.
func (h *FrameHistory) Push(d time.Duration) {
	h.samples[h.next] = float32(d.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded samples in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, s := range h.samples[:h.filled] {
		total += s
	}
	return total / float32(h.filled)
}

// Samples returns the backing ring in storage order, for plotting.
func (h *FrameHistory) Samples() []float32 {
	return h.samples
}

// SchedulerStatsWindow shows per-system timings and the storage contents.
type SchedulerStatsWindow struct {
	Title     string
	Scheduler *ecs.Scheduler
	Storage   *ecs.Storage
	History   *FrameHistory

	lastFrame time.Time
}

// Render draws the window. It is meant to be used as an ImguiItem callback.
func (w *SchedulerStatsWindow) Render() {
	now := time.Now()
	if !w.lastFrame.IsZero() {
		w.History.Push(now.Sub(w.lastFrame))
	}
	w.lastFrame = now

	imgui.SetNextWindowPosV(imgui.NewVec2(420, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(210, 260), imgui.CondOnce)

	if !imgui.BeginV(w.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := w.History.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	samples := w.History.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	stats := w.Scheduler.Stats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.MaxDuration.String())
		}

		imgui.EndTable()
	}

	if w.Storage != nil && imgui.TreeNodeStr("Storage") {
		st := w.Storage.CollectStats()
		imgui.Text(fmt.Sprintf("Entities: %d", st.EntityCount))
		for _, c := range st.Components {
			imgui.BulletText(fmt.Sprintf("%s x%d", c.Type, c.Count))
		}
		for _, s := range st.SingletonTypes {
			imgui.BulletText(s)
		}
		imgui.TreePop()
	}

	imgui.End()
}
