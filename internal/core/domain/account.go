package domain

import "time"

// AccountStatus enumerates possible account states.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "Active"
	AccountStatusInactive AccountStatus = "Inactive"
	AccountStatusDeleted  AccountStatus = "Deleted"
)

// Gender enumerates accepted gender values on registration.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ValidGender reports whether the supplied value is an accepted gender.
func ValidGender(value string) bool {
	return value == string(GenderMale) || value == string(GenderFemale)
}

// Role enumerates account roles. The service only distinguishes a single
// admin flag beyond the default user role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ProfileImage references an object stored in the image bucket.
type ProfileImage struct {
	Key          string `bson:"key,omitempty" json:"key,omitempty"`
	Location     string `bson:"location,omitempty" json:"location,omitempty"`
	OriginalName string `bson:"originalName,omitempty" json:"originalName,omitempty"`
}

// Empty reports whether no image reference is present.
func (p ProfileImage) Empty() bool {
	return p.Key == "" && p.Location == ""
}

// Account mirrors the persisted representation in the accounts collection.
//
// ResetTokenDigest and ResetTokenExpiresAt are set and cleared together:
// at most one outstanding reset token exists per account, and the store
// only ever holds the digest, never the raw token.
type Account struct {
	ID                  string        `bson:"_id"`
	Name                string        `bson:"name"`
	Gender              Gender        `bson:"gender"`
	UserName            string        `bson:"userName"`
	Email               string        `bson:"email"`
	Phone               string        `bson:"phone"`
	PasswordHash        string        `bson:"password"`
	Role                Role          `bson:"role"`
	Status              AccountStatus `bson:"status"`
	ProfileImage        ProfileImage  `bson:"profileImage,omitempty"`
	PasswordChangedAt   *time.Time    `bson:"passwordChangedAt,omitempty"`
	ResetTokenDigest    *string       `bson:"passwordResetToken,omitempty"`
	ResetTokenExpiresAt *time.Time    `bson:"passwordResetExpires,omitempty"`
	LoginCount          int64         `bson:"loginCount"`
	LastLoginAt         time.Time     `bson:"lastLoginDate"`
	CreatedAt           time.Time     `bson:"createdAt"`
	UpdatedAt           time.Time     `bson:"updatedAt"`
}

// Usable reports whether the account may authenticate. Soft-deleted
// accounts are rejected uniformly regardless of credential validity.
func (a *Account) Usable() bool {
	if a == nil {
		return false
	}
	return a.Status != AccountStatusDeleted
}

// Sanitized returns a copy safe for external responses: the password hash
// and reset-token fields are stripped.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	a.ResetTokenDigest = nil
	a.ResetTokenExpiresAt = nil
	return a
}
