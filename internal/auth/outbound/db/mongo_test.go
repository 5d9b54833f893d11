package db

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

var mongoNow = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

func newMockMongo(mt *mtest.T) *Mongo {
	return NewMongo(mt.DB, stubClock{now: mongoNow}, instrument.NewNoop())
}

func TestMongo_GetAccountByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	oid := primitive.NewObjectID()
	expiry := mongoNow.Add(5 * time.Minute)

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "turftime.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "A"},
			{Key: "email", Value: "a@x.io"},
			{Key: "role", Value: "turfOwner"},
			{Key: "password", Value: "hash"},
			{Key: "otp", Value: "digest"},
			{Key: "otpExpiry", Value: expiry},
			{Key: "isVerified", Value: false},
			{Key: "createdAt", Value: mongoNow},
			{Key: "updatedAt", Value: mongoNow},
			{Key: "__v", Value: 0},
		}))

		acc, err := newMockMongo(mt).GetAccountByEmail(context.Background(), "a@x.io")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), acc.ID)
		assert.Equal(mt, entity.RoleTurfOwner, acc.Role)
		assert.Equal(mt, "hash", acc.PasswordHash)
		require.NotNil(mt, acc.OTP)
		assert.Equal(mt, "digest", acc.OTP.Digest)
		assert.True(mt, expiry.Equal(acc.OTP.ExpiresAt))
		assert.Nil(mt, acc.ResetOTP)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "turftime.users", mtest.FirstBatch))

		_, err := newMockMongo(mt).GetAccountByEmail(context.Background(), "a@x.io")
		assert.ErrorIs(mt, err, goerror.ErrNotFound)
	})
}

func TestMongo_GetAccountByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("malformed id", func(mt *mtest.T) {
		_, err := newMockMongo(mt).GetAccountByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, goerror.ErrNotFound)
	})
}

func TestMongo_CreateAccount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	acc := entity.Account{
		ID:           primitive.NewObjectID().Hex(),
		Name:         "A",
		Email:        "a@x.io",
		Role:         entity.RoleUser,
		PasswordHash: "hash",
		OTP:          &entity.Challenge{Digest: "digest", ExpiresAt: mongoNow.Add(5 * time.Minute)},
	}

	mt.Run("inserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, newMockMongo(mt).CreateAccount(context.Background(), acc))

		doc := mt.GetStartedEvent().Command
		assert.Equal(mt, "a@x.io", doc.Lookup("documents", "0", "email").StringValue())
		assert.Equal(mt, "digest", doc.Lookup("documents", "0", "otp").StringValue())
		assert.False(mt, doc.Lookup("documents", "0", "isVerified").Boolean())
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: turftime.users index: email_1",
		}))

		err := newMockMongo(mt).CreateAccount(context.Background(), acc)
		assert.ErrorIs(mt, err, goerror.ErrConflict)
	})
}

func TestMongo_Updates(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID().Hex()

	matched := func(n int) bson.D {
		return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
	}

	mt.Run("mark verified clears the otp slot", func(mt *mtest.T) {
		mt.AddMockResponses(matched(1))

		require.NoError(mt, newMockMongo(mt).MarkVerified(context.Background(), id))

		cmd := mt.GetStartedEvent().Command
		assert.True(mt, cmd.Lookup("updates", "0", "u", "$set", "isVerified").Boolean())
		_, err := cmd.LookupErr("updates", "0", "u", "$unset", "otp")
		assert.NoError(mt, err)
	})

	mt.Run("reset challenge goes to the reset slot", func(mt *mtest.T) {
		mt.AddMockResponses(matched(1))

		err := newMockMongo(mt).SetChallenge(context.Background(), id, entity.PurposeReset, entity.Challenge{
			Digest:    "d",
			ExpiresAt: mongoNow.Add(time.Minute),
		})
		require.NoError(mt, err)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "d", cmd.Lookup("updates", "0", "u", "$set", "resetPasswordOtp").StringValue())
		_, err = cmd.LookupErr("updates", "0", "u", "$set", "otp")
		assert.Error(mt, err)
	})

	mt.Run("clear login challenge", func(mt *mtest.T) {
		mt.AddMockResponses(matched(1))

		require.NoError(mt, newMockMongo(mt).ClearChallenge(context.Background(), id, entity.PurposeLogin))

		_, err := mt.GetStartedEvent().Command.LookupErr("updates", "0", "u", "$unset", "otpExpiry")
		assert.NoError(mt, err)
	})

	mt.Run("reset password", func(mt *mtest.T) {
		mt.AddMockResponses(matched(1))

		require.NoError(mt, newMockMongo(mt).ResetPassword(context.Background(), id, "new-hash"))

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "new-hash", cmd.Lookup("updates", "0", "u", "$set", "password").StringValue())
	})

	mt.Run("update registration", func(mt *mtest.T) {
		mt.AddMockResponses(matched(1))

		err := newMockMongo(mt).UpdateRegistration(context.Background(), entity.Account{
			ID:           id,
			Name:         "B",
			PasswordHash: "hash2",
			OTP:          &entity.Challenge{Digest: "d2", ExpiresAt: mongoNow.Add(time.Minute)},
		})
		require.NoError(mt, err)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "B", cmd.Lookup("updates", "0", "u", "$set", "name").StringValue())
		assert.Equal(mt, "d2", cmd.Lookup("updates", "0", "u", "$set", "otp").StringValue())
	})

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(matched(0))

		err := newMockMongo(mt).MarkVerified(context.Background(), id)
		assert.ErrorIs(mt, err, goerror.ErrNotFound)
	})
}
