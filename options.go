package pixelio

import (
	"log"
	"runtime"
)

type Options struct {
	// Upper bound on goroutines working on rows at the same time.
	// Zero or negative uses GOMAXPROCS.
	Workers int
	// Window refinement passes DominantColor may run before giving up
	// with ErrConvergence. Real photos settle in well under 20 passes.
	MaxIterations int
	// Receives one line per refinement pass when set.
	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Workers:       0,
		MaxIterations: 64,
	}
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o Options) maxIterations() int {
	if o.MaxIterations <= 0 {
		return DefaultOptions().MaxIterations
	}
	return o.MaxIterations
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}
