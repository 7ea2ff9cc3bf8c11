package service

import (
	"context"
	"net/http"
	"sort"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	msgAllServicesUp    = "All services are up and running"
	msgSomeServicesDown = "Some services are down"
)

// StatusReporter implements interfaces.StatusChecker: it pings the status endpoint of every registered
// instance. It only reads the registry.
type StatusReporter struct {
	registry    interfaces.Registry
	sender      interfaces.Sender
	statusPaths map[domain.ServiceType]string
	logger      log.Logger
}

// NewStatusReporter creates a reporter. statusPaths overrides domain.DefaultStatusPath per service type
// (may be empty). Panics on nil registry, sender or logger.
//
// Called from cmd/main; used by handlers.AdminServer.Status.
func NewStatusReporter(registry interfaces.Registry, sender interfaces.Sender, statusPaths map[domain.ServiceType]string, logger log.Logger) *StatusReporter {
	if statusPaths == nil {
		statusPaths = map[domain.ServiceType]string{}
	}
	return &StatusReporter{
		registry:    helpers.NilPanic(registry, "service.status.go: registry is required"),
		sender:      helpers.NilPanic(sender, "service.status.go: sender is required"),
		statusPaths: statusPaths,
		logger:      log.With(helpers.NilPanic(logger, "service.status.go: logger is required"), "component", "status_reporter"),
	}
}

// Check walks service types in name order and their instances in registry order, stopping at the first
// instance that does not answer 200.
//
// Returns: (report, true) when every instance answered 200; (report with FailedService, false) otherwise.
// Entries are formatted "<type>: <url>".
func (s *StatusReporter) Check(ctx context.Context) (domain.StatusReport, bool) {
	services := s.registry.Services()
	types := make([]domain.ServiceType, 0, len(services))
	for t := range services {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	working := make([]string, 0)
	for _, t := range types {
		req := domain.ForwardRequest{Service: t, Method: http.MethodGet, PathSuffix: s.statusPath(t)}
		for _, url := range services[t] {
			entry := string(t) + ": " + string(url)
			resp, err := s.sender.Send(ctx, url, req)
			if err != nil || resp.StatusCode != http.StatusOK {
				level.Warn(s.logger).Log("msg", "instance status check failed", "service", t, "url", url, "status", resp.StatusCode, "err", err)
				return domain.StatusReport{Message: msgSomeServicesDown, WorkingServices: working, FailedService: entry}, false
			}
			working = append(working, entry)
		}
	}
	return domain.StatusReport{Message: msgAllServicesUp, WorkingServices: working}, true
}

func (s *StatusReporter) statusPath(t domain.ServiceType) string {
	if p, ok := s.statusPaths[t]; ok && p != "" {
		return p
	}
	return domain.DefaultStatusPath(t)
}
