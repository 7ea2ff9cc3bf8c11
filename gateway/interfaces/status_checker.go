package interfaces

import (
	"context"

	"github.com/denis-svg/Crash-Game/gateway/domain"
)

// StatusChecker builds the aggregate status report.
//
// Implemented by service.StatusReporter. Called from handlers.AdminServer.Status.
//
//go:generate moq -stub -out mock/status_checker.go -pkg mock . StatusChecker
type StatusChecker interface {
	// Check returns (report, true) when every registered instance answered 200, (report, false) otherwise.
	Check(ctx context.Context) (domain.StatusReport, bool)
}
