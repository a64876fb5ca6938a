package model

import (
	"time"

	mgo "github.com/JacobHeater/upsign/service/mgo"

	"go.mongodb.org/mongo-driver/mongo"
)

// User is the account master record. Accounts are keyed by verified phone
// number; the profile fields are filled in after first login.
type User struct {
	UserID        string `bson:"user_id" json:"userId"` // immutable primary key
	Phone         string `bson:"phone" json:"phone"`
	PhoneVerified bool   `bson:"phone_verified" json:"phoneVerified"`

	Nickname string `bson:"nickname" json:"nickname"`
	FaceURL  string `bson:"face_url,omitempty" json:"faceUrl,omitempty"`

	LastLoginTime *time.Time `bson:"last_login_time,omitempty" json:"-"`

	CreateTime time.Time `bson:"create_time" json:"-"`
	UpdateTime time.Time `bson:"update_time" json:"-"`
}

func (u *User) GetTableName() string {
	return "user"
}

func (u *User) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(u.GetTableName())
}
