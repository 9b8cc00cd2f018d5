package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// FormField describes one answer an event collects at signup. The declared
// Type drives validation; keys are never sniffed for meaning.
type FormField struct {
	Key      string `bson:"key" json:"key"`
	Label    string `bson:"label" json:"label"`
	Required bool   `bson:"required" json:"required"`
	Type     string `bson:"type" json:"type"` // text, email, phone, number
}

const (
	FieldTypeText   = "text"
	FieldTypeEmail  = "email"
	FieldTypePhone  = "phone"
	FieldTypeNumber = "number"
)

type Event struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Date           string             `bson:"date" json:"date"`
	StartTime      string             `bson:"startTime" json:"startTime"`
	EndTime        string             `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Location       string             `bson:"location" json:"location"`
	Price          string             `bson:"price,omitempty" json:"price,omitempty"`
	MemberPrice    string             `bson:"memberPrice,omitempty" json:"memberPrice,omitempty"`
	NonMemberPrice string             `bson:"nonMemberPrice,omitempty" json:"nonMemberPrice,omitempty"`
	Description    string             `bson:"description" json:"description"`
	ImageURL       string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	FormFields     []FormField        `bson:"formFields" json:"formFields"`
	SignupOpen     bool               `bson:"signupOpen" json:"signupOpen"`
	NoSignupNeeded bool               `bson:"noSignupNeeded" json:"noSignupNeeded"`
	MaxSignups     int64              `bson:"maxSignups,omitempty" json:"maxSignups,omitempty"`
	Tags           []string           `bson:"tags" json:"tags"`
	IsPublic       bool               `bson:"isPublic" json:"isPublic"`
	CreatedBy      string             `bson:"createdBy" json:"createdBy"`
	CreatedAt      int64              `bson:"createdAt" json:"createdAt"`
}

type EventSignup struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID     primitive.ObjectID `bson:"eventId" json:"eventId"`
	FormData    map[string]string  `bson:"formData" json:"formData"`
	SubmittedAt int64              `bson:"submittedAt" json:"submittedAt"`
	IPAddress   string             `bson:"ipAddress" json:"ipAddress"`
	Paid        bool               `bson:"paid" json:"paid"`
}
