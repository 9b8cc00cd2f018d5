package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Account is the identity provider's own record. The document id is the uid
// referenced everywhere else.
type Account struct {
	UID          string                 `bson:"_id" json:"uid"`
	Email        string                 `bson:"email" json:"email"`
	PasswordHash string                 `bson:"passwordHash" json:"-"`
	DisplayName  string                 `bson:"displayName" json:"displayName"`
	Claims       map[string]interface{} `bson:"claims,omitempty" json:"claims,omitempty"`
	Disabled     bool                   `bson:"disabled" json:"disabled"`
	CreatedAt    int64                  `bson:"createdAt" json:"createdAt"`
}

// WebsiteUser mirrors the provider account in the users collection, with the
// restriction flag and its audit fields. Merged with the account at read time.
type WebsiteUser struct {
	UID               string `bson:"_id" json:"uid"`
	Email             string `bson:"email" json:"email"`
	DisplayName       string `bson:"displayName" json:"displayName"`
	Restricted        bool   `bson:"restricted" json:"restricted"`
	RestrictedBy      string `bson:"restrictedBy,omitempty" json:"restrictedBy,omitempty"`
	RestrictedAt      int64  `bson:"restrictedAt,omitempty" json:"restrictedAt,omitempty"`
	RestrictionReason string `bson:"restrictionReason,omitempty" json:"restrictionReason,omitempty"`
	CreatedAt         int64  `bson:"createdAt" json:"createdAt"`
}

// Admin marks a uid as a member of the admins collection.
type Admin struct {
	UID     string `bson:"_id" json:"uid"`
	AddedAt int64  `bson:"addedAt" json:"addedAt"`
}

// AuditEntry is one row of the append-only admin_audit_logs collection.
type AuditEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action      string             `bson:"action" json:"action"`
	TargetID    string             `bson:"targetId" json:"targetId"`
	PerformedBy string             `bson:"performedBy" json:"performedBy"`
	Timestamp   int64              `bson:"timestamp" json:"timestamp"`
	Details     string             `bson:"details,omitempty" json:"details,omitempty"`
}
