package avscale

import (
	"go.uber.org/atomic"
)

type Statistics struct {
	FramesProcessed  uint64 `json:",omitempty"`
	FramesFailed     uint64 `json:",omitempty"`
	BytesRead        uint64 `json:",omitempty"`
	BytesWrote       uint64 `json:",omitempty"`
	Reconfigurations uint64 `json:",omitempty"`
}

type CommonsProcessingStatistics struct {
	FramesProcessed  atomic.Uint64
	FramesFailed     atomic.Uint64
	BytesRead        atomic.Uint64
	BytesWrote       atomic.Uint64
	Reconfigurations atomic.Uint64
}

func (stats *CommonsProcessingStatistics) Convert() Statistics {
	return Statistics{
		FramesProcessed:  stats.FramesProcessed.Load(),
		FramesFailed:     stats.FramesFailed.Load(),
		BytesRead:        stats.BytesRead.Load(),
		BytesWrote:       stats.BytesWrote.Load(),
		Reconfigurations: stats.Reconfigurations.Load(),
	}
}

type CommonsProcessing struct {
	CommonsProcessingStatistics
}

// GetStats is safe to be called concurrently with anything else.
func (e *CommonsProcessing) GetStats() *Statistics {
	return ptr(e.CommonsProcessingStatistics.Convert())
}

func ptr[T any](v T) *T {
	return &v
}
