package middlewares

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

const serviceName = "guest-gallery"

// StartTracing starts the Datadog tracer and returns the gin middleware plus a stop
// function for shutdown.
func StartTracing() (gin.HandlerFunc, func()) {
	tracer.Start(tracer.WithService(serviceName))
	slog.Info("datadog tracing enabled", "service", serviceName)
	return gintrace.Middleware(serviceName), tracer.Stop
}
