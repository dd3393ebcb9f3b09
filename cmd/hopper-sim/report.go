package main

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/hopper/ecs"
	"github.com/plus3/hopper/game"
	"github.com/plus3/hopper/physics"
)

type Report struct {
	// Configuration
	Stage  game.Stage
	Tuning physics.Tuning
	Script string
	Steps  int

	// Results
	Ticks     uint64
	TotalTime time.Duration
	StepTime  Stats
	Start     physics.Body
	End       physics.Body
	Events    game.ContactLog
	Systems   []ecs.SystemStats

	MinY        float64
	MaxY        float64
	MaxSpeed    float64
	MaxSpin     float64
	GroundTicks int
	tracked     bool

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Track folds one tick of player state into the running extremes.
func (r *Report) Track(b *physics.Body) {
	if !r.tracked {
		r.MinY, r.MaxY = b.Pos.Y, b.Pos.Y
		r.tracked = true
	}
	r.MinY = min(r.MinY, b.Pos.Y)
	r.MaxY = max(r.MaxY, b.Pos.Y)
	r.MaxSpeed = max(r.MaxSpeed, b.Speed())
	r.MaxSpin = max(r.MaxSpin, math.Abs(b.AngularVel))
	if b.Grounded {
		r.GroundTicks++
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `# Hopper Simulation Report

## Configuration
- **Stage:** {{.Stage}}
- **Script:** ` + "`{{.Script}}`" + ` ({{.Steps}} steps)
- **Gravity:** {{f .Tuning.Gravity}} px/s²
- **Jump Speed:** {{f .Tuning.JumpSpeed}} px/s
- **Move Speed:** {{f .Tuning.MoveSpeed}} px/s
- **Rotation:** {{.Tuning.Rotation}}

## Player
- **Start:** ({{f .Start.Pos.X}}, {{f .Start.Pos.Y}})
- **End:** ({{f .End.Pos.X}}, {{f .End.Pos.Y}}) grounded={{.End.Grounded}} angle={{f .End.Angle}}
- **Highest / Lowest Center Y:** {{f .MinY}} / {{f .MaxY}}
- **Max Speed:** {{f .MaxSpeed}} px/s
- **Max Spin:** {{f .MaxSpin}} rad/s
- **Grounded Ticks:** {{.GroundTicks}} of {{.Ticks}}

## Events
- **Jumps:** {{.Events.Jumps}}
- **Landings:** {{.Events.Landings}}
- **Respawns:** {{.Events.Respawns}}
{{- with .Events.Last}}{{if .Hit}}
- **Last Contact:** segment {{.Segment}}, normal ({{f .Normal.X}}, {{f .Normal.Y}}), {{len .Points}} corner(s)
{{- end}}{{end}}

## Performance
- **Total Time:** {{.TotalTime}}
- **Step Time:** avg {{.StepTime.Avg}}, min {{.StepTime.Min}}, max {{.StepTime.Max}}
{{range .Systems}}  - {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"f": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
