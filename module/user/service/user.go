package service

import (
	"context"
	"time"

	usermodel "github.com/JacobHeater/upsign/module/user/model"
	storage "github.com/JacobHeater/upsign/service/storage"
	"github.com/JacobHeater/upsign/tools/errs"
	ids "github.com/JacobHeater/upsign/tools/ids"
	jwtlib "github.com/JacobHeater/upsign/tools/security"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RequestCode issues a fresh login code for the phone. Delivery (SMS) is an
// external concern; the returned code goes to the SMS provider, never to the
// HTTP response.
func RequestCode(phone string, ttl time.Duration) (string, error) {
	code, err := storage.NewOTPCode()
	if err != nil {
		return "", errors.Wrap(err, "generate otp")
	}
	if err := storage.OTPSave(phone, code, ttl); err != nil {
		return "", errors.Wrap(err, "save otp")
	}
	return code, nil
}

// VerifyCode checks the code, upserts the account for the phone and issues a
// session token. First-time callers get a new user record.
func VerifyCode(ctx context.Context, opts jwtlib.Options, phone, code string) (*usermodel.User, string, error) {
	ok, err := storage.OTPVerify(phone, code)
	if err != nil {
		return nil, "", errors.Wrap(err, "verify otp")
	}
	if !ok {
		return nil, "", errs.ErrOTPInvalid
	}

	now := time.Now()
	var u usermodel.User
	err = u.Collection().FindOneAndUpdate(ctx,
		bson.M{"phone": phone},
		bson.M{
			"$set": bson.M{
				"phone_verified":  true,
				"last_login_time": now,
				"update_time":     now,
			},
			"$setOnInsert": bson.M{
				"user_id":     ids.GenerateString(),
				"phone":       phone,
				"nickname":    "",
				"create_time": now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return nil, "", errors.Wrap(err, "upsert user")
	}

	token, _, _, err := jwtlib.Generate(opts, u.UserID, nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "sign token")
	}
	return &u, token, nil
}

func GetByID(ctx context.Context, userID string) (*usermodel.User, error) {
	var u usermodel.User
	err := u.Collection().FindOne(ctx, bson.M{"user_id": userID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WrapMsg("user " + userID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &u, nil
}

// GetByPhone resolves a registered account from a phone number.
func GetByPhone(ctx context.Context, phone string) (*usermodel.User, error) {
	var u usermodel.User
	err := u.Collection().FindOne(ctx, bson.M{"phone": phone}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WrapMsg("phone " + phone)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user by phone")
	}
	return &u, nil
}

// UpdateProfile sets the mutable profile fields.
func UpdateProfile(ctx context.Context, userID, nickname, faceURL string) (*usermodel.User, error) {
	var u usermodel.User
	err := u.Collection().FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"nickname":    nickname,
			"face_url":    faceURL,
			"update_time": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WrapMsg("user " + userID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return &u, nil
}
