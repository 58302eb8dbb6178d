package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/nudelsalat/game"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Systems  int
	BrewAt   int

	// Results
	TotalFrames   int64
	TotalTime     time.Duration
	FrameTime     Stats
	Counters      Counters
	Progress      game.GameProgress
	Entities      int
	Bodies        int
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
	s.Min, s.Max = s.Samples[0], s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Nudelsalat Bench Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Systems:** {{.Systems}}
- **Brew At:** {{.BrewAt}} items

## Frame Times
- **Total Frames:** {{.TotalFrames}}
- **Total Time:** {{.TotalTime}}
- **Avg:** {{.FrameTime.Avg}}
- **Min:** {{.FrameTime.Min}}
- **Max:** {{.FrameTime.Max}}

## Gameplay
- Clicks: {{.Counters.Clicks}}, grabs: {{.Counters.Grabs}}, places: {{.Counters.Places}}
- Brews: {{.Counters.Brews}}, crafts: {{.Counters.Crafts}}, breaks: {{.Counters.Breaks}}, repairs: {{.Counters.Repairs}}
- Progress: {{.Progress.ItemsPlaced}} placed, {{.Progress.ItemsCrafted}} crafted, score {{.Progress.TotalScore}}
- Entities at end: {{.Entities}}, bodies: {{.Bodies}}

## Memory Usage (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{.MemStatsEnd.PauseTotalNs | ns}}
`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
