package uid

import "go.mongodb.org/mongo-driver/bson/primitive"

// ObjectID generates MongoDB ObjectIDs in their 24-char hex form, so ids minted
// before insert are accepted as `_id` by the document store.
type ObjectID struct{}

// NewObjectID returns an ObjectID generator.
func NewObjectID() *ObjectID {
	return &ObjectID{}
}

// Generate returns a new ObjectID hex string.
func (*ObjectID) Generate() string {
	return primitive.NewObjectID().Hex()
}
