package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/nudelsalat/ecs"
)

// Performance tracks frame times for the performance window.
type Performance struct {
	history []float32
	index   int
	last    time.Time
}

func NewPerformance(historyFrames int) *Performance {
	return &Performance{history: make([]float32, historyFrames)}
}

// Sample records the time since the previous sample in milliseconds.
func (p *Performance) Sample(now time.Time) {
	if !p.last.IsZero() {
		p.history[p.index] = float32(now.Sub(p.last).Seconds() * 1000)
		p.index = (p.index + 1) % len(p.history)
	}
	p.last = now
}

// Average returns the mean recorded frame time in milliseconds.
func (p *Performance) Average() float32 {
	var sum float32
	for _, ft := range p.history {
		sum += ft
	}
	return sum / float32(len(p.history))
}

// PerformanceWindow shows frame times, per-system timings and storage occupancy.
func PerformanceWindow(scheduler *ecs.Scheduler) ImguiItem {
	perf := NewPerformance(120)
	storage := scheduler.Storage()

	return ImguiItem{Render: func() {
		perf.Sample(time.Now())

		imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(320, 360), imgui.CondOnce)
		if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		avg := perf.Average()
		if avg > 0 {
			imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
		}
		imgui.PlotLinesFloatPtr("##frametime", &perf.history[0], int32(len(perf.history)))

		stats := storage.CollectStats()
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
		imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
		imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

		sched := scheduler.GetStats()
		if imgui.TreeNodeStr(fmt.Sprintf("Systems (%d)", sched.SystemCount)) {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("SystemTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("System")
				imgui.TableSetupColumn("Last")
				imgui.TableSetupColumn("Max")
				imgui.TableHeadersRow()

				for _, sys := range sched.Systems {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(sys.Name)
					imgui.TableNextColumn()
					imgui.Text(sys.LastDuration.String())
					imgui.TableNextColumn()
					imgui.Text(sys.MaxDuration.String())
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Archetypes") {
			for _, arch := range stats.ArchetypeBreakdown {
				imgui.BulletText(fmt.Sprintf("0x%X  %d components  %d entities", arch.ID, len(arch.ComponentTypes), arch.EntityCount))
			}
			imgui.TreePop()
		}

		imgui.End()
	}}
}
