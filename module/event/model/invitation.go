package model

import (
	"time"

	mgo "github.com/JacobHeater/upsign/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

// Invitation status
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

// EventInvitation invites a phone number to an event. The invitee may not be
// a registered user yet; the record is matched up by phone at RSVP time.
type EventInvitation struct {
	InvitationID string `bson:"invitation_id" json:"invitationId"`
	EventID      string `bson:"event_id" json:"eventId"`
	Phone        string `bson:"phone" json:"phone"`
	InvitedBy    string `bson:"invited_by" json:"invitedBy"`
	Status       string `bson:"status" json:"status"`

	RsvpAt     *time.Time `bson:"rsvp_at,omitempty" json:"rsvpAt,omitempty"`
	CreateTime time.Time  `bson:"create_time" json:"-"`
	UpdateTime time.Time  `bson:"update_time" json:"-"`
}

func (i *EventInvitation) GetTableName() string {
	return "event_invitation"
}

func (i *EventInvitation) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(i.GetTableName())
}
