package interfaces

import (
	"context"

	"github.com/denis-svg/Crash-Game/discovery/domain"
)

// GatewayNotifier pushes registry changes to the gateway's /gateway/cache endpoint.
//
//go:generate moq -stub -out mock/gateway_notifier.go -pkg mock . GatewayNotifier
type GatewayNotifier interface {
	// Notify sends reg with action. The caller treats any error as best-effort and only logs it.
	Notify(ctx context.Context, action domain.NotifyAction, reg domain.Registration) error
}
