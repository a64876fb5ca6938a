package service

import (
	"context"
	"time"

	eventmodel "github.com/JacobHeater/upsign/module/event/model"
	"github.com/JacobHeater/upsign/tools/errs"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddAttendee records the user as attending; already attending is fine.
func AddAttendee(ctx context.Context, eventID, userID string) (*eventmodel.EventAttendee, error) {
	if _, err := GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	now := time.Now()
	var att eventmodel.EventAttendee
	err := att.Collection().FindOneAndUpdate(ctx,
		bson.M{"event_id": eventID, "user_id": userID},
		bson.M{
			"$set": bson.M{"update_time": now},
			"$setOnInsert": bson.M{
				"segment_ids": []string{},
				"joined_at":   now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&att)
	if err != nil {
		return nil, errors.Wrap(err, "upsert attendee")
	}
	return &att, nil
}

// RemoveAttendee drops the attendance record. Allowed for the attendee
// themselves or the event host.
func RemoveAttendee(ctx context.Context, callerID, eventID, userID string) error {
	if callerID != userID {
		if _, err := requireHost(ctx, eventID, callerID); err != nil {
			return err
		}
	}
	var att eventmodel.EventAttendee
	res, err := att.Collection().DeleteOne(ctx, bson.M{"event_id": eventID, "user_id": userID})
	if err != nil {
		return errors.Wrap(err, "delete attendee")
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound.WrapMsg("attendee " + userID)
	}
	return nil
}

func ListAttendees(ctx context.Context, eventID string) ([]eventmodel.EventAttendee, error) {
	var att eventmodel.EventAttendee
	cur, err := att.Collection().Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, errors.Wrap(err, "find attendees")
	}
	var out []eventmodel.EventAttendee
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode attendees")
	}
	return out, nil
}

// JoinSegment signs an attendee up for one segment of the event.
func JoinSegment(ctx context.Context, eventID, segmentID, userID string) error {
	var att eventmodel.EventAttendee
	res, err := att.Collection().UpdateOne(ctx,
		bson.M{"event_id": eventID, "user_id": userID},
		bson.M{
			"$addToSet": bson.M{"segment_ids": segmentID},
			"$set":      bson.M{"update_time": time.Now()},
		},
	)
	if err != nil {
		return errors.Wrap(err, "join segment")
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound.WrapMsg("attendee " + userID)
	}
	return nil
}

// LeaveSegment takes an attendee off one segment; the event attendance stays.
func LeaveSegment(ctx context.Context, eventID, segmentID, userID string) error {
	var att eventmodel.EventAttendee
	res, err := att.Collection().UpdateOne(ctx,
		bson.M{"event_id": eventID, "user_id": userID},
		bson.M{
			"$pull": bson.M{"segment_ids": segmentID},
			"$set":  bson.M{"update_time": time.Now()},
		},
	)
	if err != nil {
		return errors.Wrap(err, "leave segment")
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound.WrapMsg("attendee " + userID)
	}
	return nil
}
