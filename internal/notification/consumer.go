package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sandeshj07/event-management-backend/internal/auth"
	"github.com/sandeshj07/event-management-backend/internal/registration"
	"github.com/sandeshj07/event-management-backend/utils"
)

// readErrorBackoff throttles the loop when the broker keeps failing.
const readErrorBackoff = 2 * time.Second

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type activityEvent struct {
	Type    string `json:"type"`
	EventID uint   `json:"event_id"`
	Name    string `json:"name"`
	UserID  uint   `json:"user_id"`
	By      uint   `json:"by"`
}

// StartKafkaConsumer fans activity messages out into in-app notifications.
// Runs until ctx is cancelled; does nothing when Kafka is not configured.
func StartKafkaConsumer(ctx context.Context, svc Service, users auth.Repository, regs registration.Repository) {
	reader := utils.NewActivityReader("notification-fanout")
	if reader == nil {
		log.Println("kafka consumer disabled, notifications limited to direct writes")
		return
	}

	go consumeLoop(ctx, reader, svc, users, regs, readErrorBackoff)
}

func consumeLoop(ctx context.Context, reader messageReader, svc Service, users auth.Repository, regs registration.Repository, backoff time.Duration) {
	defer reader.Close()
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("kafka consumer: read failed: %v", err)
			// back off so a broker outage does not spin the loop
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			continue
		}

		var ev activityEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Printf("kafka consumer: bad payload: %v", err)
			continue
		}

		if err := fanOut(ctx, svc, users, regs, ev); err != nil {
			log.Printf("kafka consumer: fan-out for %s failed: %v", ev.Type, err)
		}
	}
}

func fanOut(ctx context.Context, svc Service, users auth.Repository, regs registration.Repository, ev activityEvent) error {
	switch ev.Type {
	case "event_created":
		ids, err := users.ListActiveIDs()
		if err != nil {
			return err
		}
		return svc.NotifyUsers(ctx, ids,
			"New event: "+ev.Name,
			fmt.Sprintf("A new event %q is open for registration.", ev.Name),
			CategoryEvent, &ev.EventID)

	case "event_updated":
		ids, err := registeredUserIDs(ctx, regs, ev.EventID)
		if err != nil {
			return err
		}
		return svc.NotifyUsers(ctx, ids,
			"Event updated: "+ev.Name,
			fmt.Sprintf("The event %q you registered for has been updated.", ev.Name),
			CategoryEvent, &ev.EventID)

	case "event_completed":
		ids, err := registeredUserIDs(ctx, regs, ev.EventID)
		if err != nil {
			return err
		}
		return svc.NotifyUsers(ctx, ids,
			"Event completed: "+ev.Name,
			fmt.Sprintf("The event %q has been completed. Thank you for taking part.", ev.Name),
			CategoryEvent, &ev.EventID)

	case "member_joined":
		return svc.NotifyUsers(ctx, []uint{ev.UserID},
			"Registration confirmed",
			"Your event registration has been recorded.",
			CategoryEvent, &ev.EventID)

	case "member_left":
		return svc.NotifyUsers(ctx, []uint{ev.UserID},
			"Registration cancelled",
			"Your event registration has been cancelled.",
			CategoryEvent, &ev.EventID)
	}

	return nil
}

func registeredUserIDs(ctx context.Context, regs registration.Repository, eventID uint) ([]uint, error) {
	members, err := regs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}
