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

type ContributionInput struct {
	SegmentID string `json:"segmentId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

func CreateContribution(ctx context.Context, eventID, userID string, in ContributionInput) (*eventmodel.EventContribution, error) {
	if _, err := GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	now := time.Now()
	con := &eventmodel.EventContribution{
		ContributionID: ids.GenerateString(),
		EventID:        eventID,
		SegmentID:      in.SegmentID,
		UserID:         userID,
		Name:           in.Name,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
		CreateTime:     now,
		UpdateTime:     now,
	}
	if _, err := con.Collection().InsertOne(ctx, con); err != nil {
		return nil, errors.Wrap(err, "insert contribution")
	}
	return con, nil
}

func ListContributions(ctx context.Context, eventID string) ([]eventmodel.EventContribution, error) {
	var con eventmodel.EventContribution
	cur, err := con.Collection().Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, errors.Wrap(err, "find contributions")
	}
	var out []eventmodel.EventContribution
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode contributions")
	}
	return out, nil
}

// UpdateContribution edits an item; only its owner may.
func UpdateContribution(ctx context.Context, contributionID, userID string, in ContributionInput) (*eventmodel.EventContribution, error) {
	var con eventmodel.EventContribution
	err := con.Collection().FindOneAndUpdate(ctx,
		bson.M{"contribution_id": contributionID, "user_id": userID},
		bson.M{"$set": bson.M{
			"segment_id":  in.SegmentID,
			"name":        in.Name,
			"quantity":    in.Quantity,
			"notes":       in.Notes,
			"update_time": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&con)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WrapMsg("contribution " + contributionID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "update contribution")
	}
	return &con, nil
}

// DeleteContribution removes an item. The owner may always; the event host
// may too.
func DeleteContribution(ctx context.Context, contributionID, callerID string) (*eventmodel.EventContribution, error) {
	var con eventmodel.EventContribution
	err := con.Collection().FindOne(ctx, bson.M{"contribution_id": contributionID}).Decode(&con)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WrapMsg("contribution " + contributionID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find contribution")
	}
	if con.UserID != callerID {
		if _, err := requireHost(ctx, con.EventID, callerID); err != nil {
			return nil, err
		}
	}
	if _, err := con.Collection().DeleteOne(ctx, bson.M{"contribution_id": contributionID}); err != nil {
		return nil, errors.Wrap(err, "delete contribution")
	}
	return &con, nil
}
