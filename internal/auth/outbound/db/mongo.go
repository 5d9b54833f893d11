package db

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/clock"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

// CollectionUsers keeps the collection name used by the first deployment, so
// existing documents are read as they are.
const CollectionUsers = "users"

type mongoUser struct {
	ID                     primitive.ObjectID `bson:"_id"`
	Name                   string             `bson:"name"`
	Email                  string             `bson:"email"`
	Phone                  string             `bson:"phone,omitempty"`
	Role                   string             `bson:"role"`
	Password               string             `bson:"password"`
	OTP                    string             `bson:"otp,omitempty"`
	OTPExpiry              *time.Time         `bson:"otpExpiry,omitempty"`
	IsVerified             bool               `bson:"isVerified"`
	ResetPasswordOTP       string             `bson:"resetPasswordOtp,omitempty"`
	ResetPasswordOTPExpiry *time.Time         `bson:"resetPasswordOtpExpiry,omitempty"`
	CreatedAt              time.Time          `bson:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt"`
}

func (m *mongoUser) toEntity() *entity.Account {
	return &entity.Account{
		ID:           m.ID.Hex(),
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Role:         entity.RoleOrDefault(m.Role),
		PasswordHash: m.Password,
		IsVerified:   m.IsVerified,
		OTP:          toChallenge(optional(m.OTP), m.OTPExpiry),
		ResetOTP:     toChallenge(optional(m.ResetPasswordOTP), m.ResetPasswordOTPExpiry),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromEntity(acc entity.Account, id primitive.ObjectID) *mongoUser {
	doc := &mongoUser{
		ID:         id,
		Name:       acc.Name,
		Email:      acc.Email,
		Phone:      acc.Phone,
		Role:       acc.Role.String(),
		Password:   acc.PasswordHash,
		IsVerified: acc.IsVerified,
		CreatedAt:  acc.CreatedAt,
		UpdatedAt:  acc.UpdatedAt,
	}
	if digest, expiresAt := challengeColumns(acc.OTP); digest != nil {
		doc.OTP, doc.OTPExpiry = *digest, expiresAt
	}
	if digest, expiresAt := challengeColumns(acc.ResetOTP); digest != nil {
		doc.ResetPasswordOTP, doc.ResetPasswordOTPExpiry = *digest, expiresAt
	}
	return doc
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// slotFields names the digest and expiry fields of a purpose's slot.
func slotFields(p entity.Purpose) (digest, expiry string) {
	if p.Slot() == entity.SlotReset {
		return "resetPasswordOtp", "resetPasswordOtpExpiry"
	}
	return "otp", "otpExpiry"
}

type Mongo struct {
	coll  *mongo.Collection
	clock clock.Clocker
	ins   instrument.Instrumentation
}

func NewMongo(db *mongo.Database, clk clock.Clocker, ins instrument.Instrumentation) *Mongo {
	return &Mongo{coll: db.Collection(CollectionUsers), clock: clk, ins: ins}
}

// EnsureIndexes creates the unique email index. It is safe to call on every start.
func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

func (s *Mongo) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer(tracerName).Start(ctx, name)
}

func (s *Mongo) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return goerror.ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return goerror.ErrConflict
	}

	return err
}

func (s *Mongo) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { endSpan(span, err) }()

	var doc mongoUser
	if err = s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, s.mapError(err)
	}

	return doc.toEntity(), nil
}

func (s *Mongo) GetAccountByID(ctx context.Context, id string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { endSpan(span, err) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, goerror.ErrNotFound
	}

	var doc mongoUser
	if err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, s.mapError(err)
	}

	return doc.toEntity(), nil
}

func (s *Mongo) CreateAccount(ctx context.Context, acc entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { endSpan(span, err) }()

	oid, err := primitive.ObjectIDFromHex(acc.ID)
	if err != nil {
		oid = primitive.NewObjectID()
	}

	now := s.clock.Now().UTC()
	acc.CreatedAt, acc.UpdatedAt = now, now

	_, err = s.coll.InsertOne(ctx, fromEntity(acc, oid))
	return s.mapError(err)
}

func (s *Mongo) UpdateRegistration(ctx context.Context, acc entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateRegistration")
	defer func() { endSpan(span, err) }()

	set := bson.M{
		"name":      acc.Name,
		"phone":     acc.Phone,
		"password":  acc.PasswordHash,
		"updatedAt": s.clock.Now().UTC(),
	}
	update := bson.M{"$set": set}

	if digest, expiresAt := challengeColumns(acc.OTP); digest != nil {
		set["otp"], set["otpExpiry"] = *digest, *expiresAt
	} else {
		update["$unset"] = bson.M{"otp": "", "otpExpiry": ""}
	}

	return s.updateByID(ctx, acc.ID, update)
}

func (s *Mongo) SetChallenge(ctx context.Context, id string, p entity.Purpose, ch entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "SetChallenge")
	defer func() { endSpan(span, err) }()

	digestField, expiryField := slotFields(p)

	return s.updateByID(ctx, id, bson.M{"$set": bson.M{
		digestField: ch.Digest,
		expiryField: ch.ExpiresAt.UTC(),
		"updatedAt": s.clock.Now().UTC(),
	}})
}

func (s *Mongo) ClearChallenge(ctx context.Context, id string, p entity.Purpose) (err error) {
	ctx, span := s.startSpan(ctx, "ClearChallenge")
	defer func() { endSpan(span, err) }()

	digestField, expiryField := slotFields(p)

	return s.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"updatedAt": s.clock.Now().UTC()},
		"$unset": bson.M{digestField: "", expiryField: ""},
	})
}

func (s *Mongo) MarkVerified(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "MarkVerified")
	defer func() { endSpan(span, err) }()

	return s.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"isVerified": true, "updatedAt": s.clock.Now().UTC()},
		"$unset": bson.M{"otp": "", "otpExpiry": ""},
	})
}

func (s *Mongo) ResetPassword(ctx context.Context, id, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer func() { endSpan(span, err) }()

	return s.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"password": passwordHash, "updatedAt": s.clock.Now().UTC()},
		"$unset": bson.M{"resetPasswordOtp": "", "resetPasswordOtpExpiry": ""},
	})
}

func (s *Mongo) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return goerror.ErrNotFound
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return s.mapError(err)
	}

	if res.MatchedCount == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
