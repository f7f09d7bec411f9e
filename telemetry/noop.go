package telemetry

import "io"

// nopCollector is the collector used when telemetry is off: every span is
// discarded at zero cost, so the pipeline can time its passes
// unconditionally.
type nopCollector struct{}

func (nopCollector) Start(name string) Timer { return nopTimer{} }

func (nopCollector) Report(w io.Writer, styles interface{}) {}

type nopTimer struct{}

func (nopTimer) End() {}

func (nopTimer) Child(name string) Timer { return nopTimer{} }
