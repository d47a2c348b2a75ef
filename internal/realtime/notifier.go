package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Event types pushed to users.
const (
	EventNewMessage       = "new_message"
	EventNewProposal      = "new_proposal"
	EventProposalAnswered = "proposal_answered"
	EventNewRating        = "new_rating"
)

// Event is the payload delivered over the websocket and the redis channel.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Notifier delivers events to a user. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, ev Event)
}

// HubNotifier pushes to live websocket clients and publishes to
// "notifications:<userID>" for other consumers. Either side may be nil.
type HubNotifier struct {
	Hub *Hub
	RDB *redis.Client
}

func NewHubNotifier(hub *Hub, rdb *redis.Client) *HubNotifier {
	return &HubNotifier{Hub: hub, RDB: rdb}
}

// Channel is the redis pub/sub channel for userID.
func Channel(userID uuid.UUID) string {
	return "notifications:" + userID.String()
}

func (n *HubNotifier) Notify(ctx context.Context, userID uuid.UUID, ev Event) {
	if n == nil {
		return
	}
	if n.Hub != nil {
		n.Hub.SendToUser(userID, ev)
	}
	if n.RDB == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := n.RDB.Publish(ctx, Channel(userID), payload).Err(); err != nil {
		log.Debug().Err(err).Str("user", userID.String()).Msg("publish notification")
	}
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, uuid.UUID, Event) {}
