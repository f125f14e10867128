package defaults

import (
	"go.opentelemetry.io/otel/trace/noop"
)

const ServiceName = "watchexpr"

var TraceProvider = noop.NewTracerProvider()
