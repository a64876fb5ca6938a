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
)

// CreateInvitation invites a phone number to the event. Host only; inviting
// the same phone twice returns the existing pending invitation.
func CreateInvitation(ctx context.Context, hostID, eventID, phone string) (*eventmodel.EventInvitation, error) {
	if _, err := requireHost(ctx, eventID, hostID); err != nil {
		return nil, err
	}
	var inv eventmodel.EventInvitation
	err := inv.Collection().FindOne(ctx,
		bson.M{"event_id": eventID, "phone": phone, "status": eventmodel.InviteStatusPending},
	).Decode(&inv)
	if err == nil {
		return &inv, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrap(err, "find invitation")
	}

	now := time.Now()
	inv = eventmodel.EventInvitation{
		InvitationID: ids.GenerateString(),
		EventID:      eventID,
		Phone:        phone,
		InvitedBy:    hostID,
		Status:       eventmodel.InviteStatusPending,
		CreateTime:   now,
		UpdateTime:   now,
	}
	if _, err := inv.Collection().InsertOne(ctx, &inv); err != nil {
		return nil, errors.Wrap(err, "insert invitation")
	}
	return &inv, nil
}

func ListInvitations(ctx context.Context, hostID, eventID string) ([]eventmodel.EventInvitation, error) {
	if _, err := requireHost(ctx, eventID, hostID); err != nil {
		return nil, err
	}
	var inv eventmodel.EventInvitation
	cur, err := inv.Collection().Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, errors.Wrap(err, "find invitations")
	}
	var out []eventmodel.EventInvitation
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode invitations")
	}
	return out, nil
}

// ListInvitationsForPhone returns pending invitations addressed to a phone.
func ListInvitationsForPhone(ctx context.Context, phone string) ([]eventmodel.EventInvitation, error) {
	var inv eventmodel.EventInvitation
	cur, err := inv.Collection().Find(ctx,
		bson.M{"phone": phone, "status": eventmodel.InviteStatusPending},
	)
	if err != nil {
		return nil, errors.Wrap(err, "find invitations")
	}
	var out []eventmodel.EventInvitation
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode invitations")
	}
	return out, nil
}

// Rsvp settles a pending invitation. The caller must be the invited phone's
// account; accepting creates the attendance record.
func Rsvp(ctx context.Context, invitationID, userID, userPhone string, accept bool) (*eventmodel.EventInvitation, error) {
	var inv eventmodel.EventInvitation
	err := inv.Collection().FindOne(ctx, bson.M{"invitation_id": invitationID}).Decode(&inv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WrapMsg("invitation " + invitationID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find invitation")
	}
	if inv.Phone != userPhone {
		return nil, errs.ErrNoPermission.WrapMsg("invitation is for another phone")
	}
	if inv.Status != eventmodel.InviteStatusPending {
		return nil, errs.ErrDuplicate.WrapMsg("invitation already " + inv.Status)
	}

	status := eventmodel.InviteStatusDeclined
	if accept {
		status = eventmodel.InviteStatusAccepted
	}
	now := time.Now()
	if _, err := inv.Collection().UpdateOne(ctx,
		bson.M{"invitation_id": invitationID},
		bson.M{"$set": bson.M{"status": status, "rsvp_at": now, "update_time": now}},
	); err != nil {
		return nil, errors.Wrap(err, "update invitation")
	}
	inv.Status = status
	inv.RsvpAt = &now

	if accept {
		if _, err := AddAttendee(ctx, inv.EventID, userID); err != nil {
			return nil, err
		}
	}
	return &inv, nil
}
