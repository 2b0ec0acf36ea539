package layerx402

import (
	"time"

	"github.com/layerx402/layerx402/logger"
	"github.com/layerx402/layerx402/metrics"
)

type Option func(*Layerx402)

func WithLogger(l logger.Logger) Option {
	return func(x *Layerx402) {
		x.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(x *Layerx402) {
		x.metrics = r
	}
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(x *Layerx402) {
		x.now = now
	}
}
