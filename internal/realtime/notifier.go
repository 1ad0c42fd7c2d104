package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Notifier fans an event out to a user's live websocket connections and
// publishes the same payload on redis for external push consumers.
type Notifier struct {
	Hub *Hub
	RDB *redis.Client
}

func NewNotifier(hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{Hub: hub, RDB: rdb}
}

func (n *Notifier) Notify(userID uint, event map[string]interface{}) {
	if n == nil {
		return
	}
	if n.Hub != nil {
		n.Hub.SendToUser(userID, event)
	}
	if n.RDB != nil {
		payload, _ := json.Marshal(event)
		n.RDB.Publish(context.Background(), fmt.Sprintf("notifications:%d", userID), payload)
	}
}
