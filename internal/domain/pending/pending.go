package pending

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingUser is a staged registration waiting for e-mail confirmation.
// The record self-expires through a TTL index on expiresAt.
type PendingUser struct {
	ID                            primitive.ObjectID `bson:"_id,omitempty"`
	DesiredUsername               string             `bson:"desiredUsername"`
	DesiredUsernameInAllLowercase string             `bson:"desiredUsernameInAllLowercase"`
	DesiredEmail                  string             `bson:"desiredEmail"`
	HashedPassword                string             `bson:"hashedPassword"`
	EmailConfirmationCodeHash     string             `bson:"emailConfirmationCodeHash"`
	ExpiresAt                     time.Time          `bson:"expiresAt"`
}

// PendingPasswordReset is a staged password-change request. At most one
// active record may exist per e-mail address.
type PendingPasswordReset struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	EmailAddress         string             `bson:"emailAddress"`
	ConfirmationCodeHash string             `bson:"passwordResetConfirmationCodeHash"`
	ResetLink            string             `bson:"passwordResetConfirmationLink"`
	UserID               primitive.ObjectID `bson:"userID"`
	ExpiresAt            time.Time          `bson:"expiresAt"`
}

// TTL shared by both pending collections.
const TTL = 1800 * time.Second
