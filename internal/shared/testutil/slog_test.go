package testutil

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureHandler_BindsWithAttrs(t *testing.T) {
	logger, h := NewLogger()

	logger.With(slog.String("conversion", "demand")).
		Info("conversion started", slog.String("output", "demand_2020_2050.xml"))

	records := h.ByMessage("conversion started")
	require.Len(t, records, 1)
	assert.Equal(t, slog.LevelInfo, records[0].Level)
	assert.Equal(t, "demand", records[0].Attrs["conversion"])
	assert.Equal(t, "demand_2020_2050.xml", records[0].Attrs["output"])
}

func TestCaptureHandler_KeepsEveryLevel(t *testing.T) {
	logger, h := NewLogger()

	logger.Debug("fine detail")
	logger.Info("progress")
	logger.Warn("odd input")
	logger.Error("gave up")

	records := h.Records()
	require.Len(t, records, 4)
	assert.Equal(t, slog.LevelDebug, records[0].Level)
	assert.Equal(t, slog.LevelError, records[3].Level)
}

func TestCaptureHandler_ConcurrentLoggers(t *testing.T) {
	logger, h := NewLogger()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.With(slog.Int("worker", n)).Info("tick")
		}(i)
	}
	wg.Wait()

	assert.Len(t, h.Records(), 10)
}
