package model

import (
	"time"

	mgo "github.com/JacobHeater/upsign/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

// Event is a planned gathering owned by its host. Segments split the event
// into activities attendees sign up for.
type Event struct {
	EventID     string `bson:"event_id" json:"eventId"`
	HostID      string `bson:"host_id" json:"hostId"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`

	StartsAt time.Time  `bson:"starts_at" json:"startsAt"`
	EndsAt   *time.Time `bson:"ends_at,omitempty" json:"endsAt,omitempty"`

	CreateTime time.Time `bson:"create_time" json:"-"`
	UpdateTime time.Time `bson:"update_time" json:"-"`
}

func (e *Event) GetTableName() string {
	return "event"
}

func (e *Event) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(e.GetTableName())
}

// EventSegment is one activity inside an event, e.g. "salads" or "cleanup".
type EventSegment struct {
	SegmentID   string `bson:"segment_id" json:"segmentId"`
	EventID     string `bson:"event_id" json:"eventId"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Position    int    `bson:"position" json:"position"`

	CreateTime time.Time `bson:"create_time" json:"-"`
	UpdateTime time.Time `bson:"update_time" json:"-"`
}

func (s *EventSegment) GetTableName() string {
	return "event_segment"
}

func (s *EventSegment) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(s.GetTableName())
}
