package model

import (
	"time"

	mgo "github.com/JacobHeater/upsign/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

// EventAttendee links a user to an event, plus the segments they signed up
// for. One record per (event, user).
type EventAttendee struct {
	EventID    string   `bson:"event_id" json:"eventId"`
	UserID     string   `bson:"user_id" json:"userId"`
	SegmentIDs []string `bson:"segment_ids" json:"segmentIds"`

	JoinedAt   time.Time `bson:"joined_at" json:"joinedAt"`
	UpdateTime time.Time `bson:"update_time" json:"-"`
}

func (a *EventAttendee) GetTableName() string {
	return "event_attendee"
}

func (a *EventAttendee) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(a.GetTableName())
}
