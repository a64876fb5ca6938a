package service

import (
	"context"
	"time"

	eventmodel "github.com/JacobHeater/upsign/module/event/model"
	ids "github.com/JacobHeater/upsign/tools/ids"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultChatPageSize = 50

// SaveChatMessage appends to the event's chat history.
func SaveChatMessage(ctx context.Context, eventID, userID, body string) (*eventmodel.EventChatMessage, error) {
	msg := &eventmodel.EventChatMessage{
		MessageID: ids.GenerateString(),
		EventID:   eventID,
		UserID:    userID,
		Body:      body,
		SentAt:    time.Now(),
	}
	if _, err := msg.Collection().InsertOne(ctx, msg); err != nil {
		return nil, errors.Wrap(err, "insert chat message")
	}
	return msg, nil
}

// ListChatMessages pages backwards through history: messages sent before
// the cursor, newest first.
func ListChatMessages(ctx context.Context, eventID string, before time.Time, limit int) ([]eventmodel.EventChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultChatPageSize
	}
	filter := bson.M{"event_id": eventID}
	if !before.IsZero() {
		filter["sent_at"] = bson.M{"$lt": before}
	}
	var msg eventmodel.EventChatMessage
	cur, err := msg.Collection().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}}).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find chat messages")
	}
	var out []eventmodel.EventChatMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode chat messages")
	}
	return out, nil
}
