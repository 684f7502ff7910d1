package port

import (
	"context"

	"mesaYaSync/internal/modules/realtime/domain"
)

// Broadcaster delivers messages to connected console clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}
