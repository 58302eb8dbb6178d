package debugui_test

import (
	"testing"
	"time"

	"github.com/plus3/nudelsalat/debugui"
	"github.com/stretchr/testify/assert"
)

func TestPerformanceAverage(t *testing.T) {
	perf := debugui.NewPerformance(4)
	start := time.Unix(0, 0)

	perf.Sample(start)
	assert.Zero(t, perf.Average())

	for i := 1; i <= 4; i++ {
		perf.Sample(start.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	assert.InDelta(t, 10, perf.Average(), 1e-4)

	perf.Sample(start.Add(70 * time.Millisecond))
	assert.InDelta(t, 15, perf.Average(), 1e-4)
}
