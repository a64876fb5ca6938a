package model

import (
	"time"

	mgo "github.com/JacobHeater/upsign/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

// EventContribution is an item an attendee brings to a segment.
type EventContribution struct {
	ContributionID string `bson:"contribution_id" json:"contributionId"`
	EventID        string `bson:"event_id" json:"eventId"`
	SegmentID      string `bson:"segment_id" json:"segmentId"`
	UserID         string `bson:"user_id" json:"userId"`

	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`

	CreateTime time.Time `bson:"create_time" json:"-"`
	UpdateTime time.Time `bson:"update_time" json:"-"`
}

func (c *EventContribution) GetTableName() string {
	return "event_contribution"
}

func (c *EventContribution) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(c.GetTableName())
}
