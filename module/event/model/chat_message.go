package model

import (
	"time"

	mgo "github.com/JacobHeater/upsign/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

// EventChatMessage is the persisted chat history for an event. The live
// relay is best-effort; history is what the REST layer stores and serves.
type EventChatMessage struct {
	MessageID string `bson:"message_id" json:"messageId"`
	EventID   string `bson:"event_id" json:"eventId"`
	UserID    string `bson:"user_id" json:"userId"`
	Body      string `bson:"body" json:"body"`

	SentAt time.Time `bson:"sent_at" json:"sentAt"`
}

func (m *EventChatMessage) GetTableName() string {
	return "event_chat_message"
}

func (m *EventChatMessage) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(m.GetTableName())
}
