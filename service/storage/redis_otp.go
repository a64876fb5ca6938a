package storage

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// otp key: up:otp:<phone>
// Value: the code; TTL controls validity.
// attempts key: up:otp:tries:<phone>, bounded by MaxVerifyAttempts.
func otpKey(phone string) string      { return "up:otp:" + phone }
func otpTriesKey(phone string) string { return "up:otp:tries:" + phone }

const (
	OTPLength         = 6
	MaxVerifyAttempts = 5
)

// NewOTPCode generates a random numeric code of OTPLength digits.
func NewOTPCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < OTPLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", OTPLength, n), nil
}

// OTPSave stores the code for the phone and resets the attempt counter.
func OTPSave(phone, code string, ttl time.Duration) error {
	if rdb == nil {
		return fmt.Errorf("redis not initialized")
	}
	if err := rdb.Set(ctx, otpKey(phone), code, ttl).Err(); err != nil {
		return err
	}
	return rdb.Del(ctx, otpTriesKey(phone)).Err()
}

// OTPVerify checks the code; the stored code is deleted on success.
// Too many failed attempts invalidate the code.
func OTPVerify(phone, code string) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis not initialized")
	}
	stored, err := rdb.Get(ctx, otpKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		tries, err := rdb.Incr(ctx, otpTriesKey(phone)).Result()
		if err != nil {
			return false, err
		}
		if tries >= MaxVerifyAttempts {
			_ = rdb.Del(ctx, otpKey(phone), otpTriesKey(phone)).Err()
		}
		return false, nil
	}
	if err := rdb.Del(ctx, otpKey(phone), otpTriesKey(phone)).Err(); err != nil {
		return false, err
	}
	return true, nil
}
