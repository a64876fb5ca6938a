package service

import (
	"context"
	"time"

	eventmodel "github.com/JacobHeater/upsign/module/event/model"
	"github.com/JacobHeater/upsign/tools/errs"
	ids "github.com/JacobHeater/upsign/tools/ids"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt" binding:"required"`
	EndsAt      *time.Time `json:"endsAt"`
}

func CreateEvent(ctx context.Context, hostID string, in EventInput) (*eventmodel.Event, error) {
	now := time.Now()
	ev := &eventmodel.Event{
		EventID:     ids.GenerateString(),
		HostID:      hostID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if _, err := ev.Collection().InsertOne(ctx, ev); err != nil {
		return nil, errors.Wrap(err, "insert event")
	}
	return ev, nil
}

func GetEvent(ctx context.Context, eventID string) (*eventmodel.Event, error) {
	var ev eventmodel.Event
	err := ev.Collection().FindOne(ctx, bson.M{"event_id": eventID}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WrapMsg("event " + eventID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find event")
	}
	return &ev, nil
}

// ListEventsForUser returns events the user hosts plus events they attend.
func ListEventsForUser(ctx context.Context, userID string) ([]eventmodel.Event, error) {
	var att eventmodel.EventAttendee
	cur, err := att.Collection().Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, errors.Wrap(err, "find attendances")
	}
	var atts []eventmodel.EventAttendee
	if err := cur.All(ctx, &atts); err != nil {
		return nil, errors.Wrap(err, "decode attendances")
	}
	attending := make([]string, 0, len(atts))
	for _, a := range atts {
		attending = append(attending, a.EventID)
	}

	var ev eventmodel.Event
	cur, err = ev.Collection().Find(ctx,
		bson.M{"$or": bson.A{
			bson.M{"host_id": userID},
			bson.M{"event_id": bson.M{"$in": attending}},
		}},
		options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find events")
	}
	var out []eventmodel.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode events")
	}
	return out, nil
}

// requireHost loads the event and checks the caller owns it.
func requireHost(ctx context.Context, eventID, userID string) (*eventmodel.Event, error) {
	ev, err := GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.HostID != userID {
		return nil, errs.ErrNoPermission.WrapMsg("not the host of event " + eventID)
	}
	return ev, nil
}

func UpdateEvent(ctx context.Context, hostID, eventID string, in EventInput) (*eventmodel.Event, error) {
	if _, err := requireHost(ctx, eventID, hostID); err != nil {
		return nil, err
	}
	var ev eventmodel.Event
	err := ev.Collection().FindOneAndUpdate(ctx,
		bson.M{"event_id": eventID},
		bson.M{"$set": bson.M{
			"title":       in.Title,
			"description": in.Description,
			"location":    in.Location,
			"starts_at":   in.StartsAt,
			"ends_at":     in.EndsAt,
			"update_time": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ev)
	if err != nil {
		return nil, errors.Wrap(err, "update event")
	}
	return &ev, nil
}

// DeleteEvent removes the event and everything hanging off it.
func DeleteEvent(ctx context.Context, hostID, eventID string) error {
	if _, err := requireHost(ctx, eventID, hostID); err != nil {
		return err
	}
	filter := bson.M{"event_id": eventID}
	var (
		ev   eventmodel.Event
		seg  eventmodel.EventSegment
		att  eventmodel.EventAttendee
		inv  eventmodel.EventInvitation
		con  eventmodel.EventContribution
		chat eventmodel.EventChatMessage
	)
	if _, err := seg.Collection().DeleteMany(ctx, filter); err != nil {
		return errors.Wrap(err, "delete segments")
	}
	if _, err := att.Collection().DeleteMany(ctx, filter); err != nil {
		return errors.Wrap(err, "delete attendees")
	}
	if _, err := inv.Collection().DeleteMany(ctx, filter); err != nil {
		return errors.Wrap(err, "delete invitations")
	}
	if _, err := con.Collection().DeleteMany(ctx, filter); err != nil {
		return errors.Wrap(err, "delete contributions")
	}
	if _, err := chat.Collection().DeleteMany(ctx, filter); err != nil {
		return errors.Wrap(err, "delete chat messages")
	}
	if _, err := ev.Collection().DeleteOne(ctx, filter); err != nil {
		return errors.Wrap(err, "delete event")
	}
	return nil
}
