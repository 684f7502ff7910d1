package usecase

import (
	"context"
	"time"

	"mesaYaSync/internal/modules/realtime/application/port"
	"mesaYaSync/internal/modules/realtime/domain"
	reservations "mesaYaSync/internal/modules/reservations/domain"
	syncdomain "mesaYaSync/internal/modules/sync/domain"
)

// MirrorBroadcaster bridges the sync layer to the websocket hub: applied feed
// events, refresh snapshots and connection-state changes become hub messages.
// It satisfies the sync module's MirrorPublisher port.
type MirrorBroadcaster struct {
	broadcaster port.Broadcaster
	now         func() time.Time
}

func NewMirrorBroadcaster(b port.Broadcaster) *MirrorBroadcaster {
	return &MirrorBroadcaster{broadcaster: b, now: time.Now}
}

func (u *MirrorBroadcaster) PublishEvent(ctx context.Context, event *reservations.Event) {
	if msg := domain.BuildEventMessage(event, u.now()); msg != nil {
		u.broadcaster.Broadcast(ctx, msg)
	}
}

func (u *MirrorBroadcaster) PublishSnapshot(ctx context.Context, items []reservations.Reservation) {
	u.broadcaster.Broadcast(ctx, domain.BuildSnapshotMessage(items, u.now()))
}

func (u *MirrorBroadcaster) PublishState(ctx context.Context, state syncdomain.ConnectionState) {
	u.broadcaster.Broadcast(ctx, domain.BuildSyncStateMessage(state, u.now()))
}
