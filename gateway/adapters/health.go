package adapters

import (
	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthReporter implements interfaces.RegistryObserver on top of the grpc health server: a service type is
// SERVING while it has at least one registered instance. The server-wide entry "" is always SERVING.
type HealthReporter struct {
	server *health.Server
}

// NewHealthReporter wires server and marks the gateway itself SERVING. Panics on nil server.
//
// Called from cmd/main when GRPC_HEALTH_PORT is set; passed to service.NewRegistry as observer.
func NewHealthReporter(server *health.Server) *HealthReporter {
	s := helpers.NilPanic(server, "adapters.health.go: health server is required")
	s.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return &HealthReporter{server: s}
}

func (h *HealthReporter) InstancesChanged(service domain.ServiceType, count int) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if count > 0 {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.server.SetServingStatus(string(service), status)
}
