package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordRequest(t *testing.T) {
	c := NewCollector()
	c.RecordRequest(100, 10*time.Millisecond)
	c.RecordRequest(300, 30*time.Millisecond)

	s := c.Collect()
	assert.Equal(t, int64(2), s.RequestCount)
	assert.Equal(t, int64(400), s.TokenCount)
	assert.InDelta(t, 20.0, s.AvgLatencyMs, 0.001)
}

func TestCollector_RecordToolCallAndError(t *testing.T) {
	c := NewCollector()
	c.RecordToolCall()
	c.RecordToolCall()
	c.RecordError()

	s := c.Collect()
	assert.Equal(t, int64(2), s.ToolCallCount)
	assert.Equal(t, int64(1), s.ErrorCount)
	assert.Equal(t, int64(0), s.RequestCount)
	assert.Zero(t, s.AvgLatencyMs)
}

func TestCollect_SystemSnapshot(t *testing.T) {
	c := NewCollector()
	s := c.Collect()

	assert.Positive(t, s.MemoryStats.HeapAlloc)
	assert.Positive(t, s.MemoryStats.HeapAllocMB)
	assert.Positive(t, s.Goroutines)
	assert.NotEmpty(t, s.Uptime)
}

func TestGetMetrics(t *testing.T) {
	c := NewCollector()
	c.RecordRequest(50, 5*time.Millisecond)
	c.RecordError()

	requests, tokens, errors, total := c.GetMetrics()
	assert.Equal(t, int64(1), requests)
	assert.Equal(t, int64(50), tokens)
	assert.Equal(t, int64(1), errors)
	assert.Equal(t, 5*time.Millisecond, total)
}

func TestStartTime(t *testing.T) {
	c := NewCollector()
	require.False(t, c.StartTime().IsZero())
	assert.LessOrEqual(t, c.StartTime(), time.Now())
}
