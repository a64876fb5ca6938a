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

type SegmentInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

func CreateSegment(ctx context.Context, hostID, eventID string, in SegmentInput) (*eventmodel.EventSegment, error) {
	if _, err := requireHost(ctx, eventID, hostID); err != nil {
		return nil, err
	}
	now := time.Now()
	seg := &eventmodel.EventSegment{
		SegmentID:   ids.GenerateString(),
		EventID:     eventID,
		Name:        in.Name,
		Description: in.Description,
		Position:    in.Position,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if _, err := seg.Collection().InsertOne(ctx, seg); err != nil {
		return nil, errors.Wrap(err, "insert segment")
	}
	return seg, nil
}

func ListSegments(ctx context.Context, eventID string) ([]eventmodel.EventSegment, error) {
	var seg eventmodel.EventSegment
	cur, err := seg.Collection().Find(ctx,
		bson.M{"event_id": eventID},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find segments")
	}
	var out []eventmodel.EventSegment
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode segments")
	}
	return out, nil
}

func UpdateSegment(ctx context.Context, hostID, eventID, segmentID string, in SegmentInput) (*eventmodel.EventSegment, error) {
	if _, err := requireHost(ctx, eventID, hostID); err != nil {
		return nil, err
	}
	var seg eventmodel.EventSegment
	err := seg.Collection().FindOneAndUpdate(ctx,
		bson.M{"segment_id": segmentID, "event_id": eventID},
		bson.M{"$set": bson.M{
			"name":        in.Name,
			"description": in.Description,
			"position":    in.Position,
			"update_time": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&seg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WrapMsg("segment " + segmentID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "update segment")
	}
	return &seg, nil
}

func DeleteSegment(ctx context.Context, hostID, eventID, segmentID string) error {
	if _, err := requireHost(ctx, eventID, hostID); err != nil {
		return err
	}
	var (
		seg eventmodel.EventSegment
		att eventmodel.EventAttendee
		con eventmodel.EventContribution
	)
	res, err := seg.Collection().DeleteOne(ctx, bson.M{"segment_id": segmentID, "event_id": eventID})
	if err != nil {
		return errors.Wrap(err, "delete segment")
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound.WrapMsg("segment " + segmentID)
	}
	// detach signups and contributions pointing at the segment
	if _, err := att.Collection().UpdateMany(ctx,
		bson.M{"event_id": eventID},
		bson.M{"$pull": bson.M{"segment_ids": segmentID}},
	); err != nil {
		return errors.Wrap(err, "detach segment signups")
	}
	if _, err := con.Collection().DeleteMany(ctx, bson.M{"segment_id": segmentID}); err != nil {
		return errors.Wrap(err, "delete segment contributions")
	}
	return nil
}
