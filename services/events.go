package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"societyhub/apperrors"
	"societyhub/models"
	"societyhub/store"
)

// EventService covers event CRUD and the public signup workflow.
type EventService struct {
	events  store.EventStore
	signups store.SignupStore
	audit   store.AuditStore
	now     func() time.Time
}

func NewEventService(events store.EventStore, signups store.SignupStore, audit store.AuditStore) *EventService {
	return &EventService{events: events, signups: signups, audit: audit, now: time.Now}
}

type EventInput struct {
	Title          string             `json:"title" binding:"required"`
	Date           string             `json:"date" binding:"required"`
	StartTime      string             `json:"startTime" binding:"required"`
	EndTime        string             `json:"endTime"`
	Location       string             `json:"location" binding:"required"`
	Price          string             `json:"price"`
	MemberPrice    string             `json:"memberPrice"`
	NonMemberPrice string             `json:"nonMemberPrice"`
	Description    string             `json:"description"`
	FormFields     []models.FormField `json:"formFields"`
	SignupOpen     bool               `json:"signupOpen"`
	NoSignupNeeded bool               `json:"noSignupNeeded"`
	MaxSignups     int64              `json:"maxSignups"`
	Tags           []string           `json:"tags"`
	IsPublic       bool               `json:"isPublic"`
}

func (s *EventService) Create(ctx context.Context, adminUID string, in EventInput) (*models.Event, error) {
	event := &models.Event{
		Title:          in.Title,
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Location:       in.Location,
		Price:          in.Price,
		MemberPrice:    in.MemberPrice,
		NonMemberPrice: in.NonMemberPrice,
		Description:    in.Description,
		FormFields:     in.FormFields,
		SignupOpen:     in.SignupOpen,
		NoSignupNeeded: in.NoSignupNeeded,
		MaxSignups:     in.MaxSignups,
		Tags:           in.Tags,
		IsPublic:       in.IsPublic,
		CreatedBy:      adminUID,
		CreatedAt:      s.now().Unix(),
	}
	if event.FormFields == nil {
		event.FormFields = []models.FormField{}
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, eventID primitive.ObjectID, in EventInput) (*models.Event, error) {
	set := bson.M{
		"title":          in.Title,
		"date":           in.Date,
		"startTime":      in.StartTime,
		"endTime":        in.EndTime,
		"location":       in.Location,
		"price":          in.Price,
		"memberPrice":    in.MemberPrice,
		"nonMemberPrice": in.NonMemberPrice,
		"description":    in.Description,
		"formFields":     in.FormFields,
		"signupOpen":     in.SignupOpen,
		"noSignupNeeded": in.NoSignupNeeded,
		"maxSignups":     in.MaxSignups,
		"tags":           in.Tags,
		"isPublic":       in.IsPublic,
	}
	if err := s.events.Update(ctx, eventID, set); err != nil {
		return nil, err
	}
	return s.events.Get(ctx, eventID)
}

func (s *EventService) SetImage(ctx context.Context, eventID primitive.ObjectID, imageURL string) error {
	return s.events.Update(ctx, eventID, bson.M{"imageUrl": imageURL})
}

// Delete removes the event and cascades to its signups.
func (s *EventService) Delete(ctx context.Context, eventID primitive.ObjectID, adminUID string) error {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return err
	}

	removed, err := s.signups.DeleteByEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return err
	}

	entry := &models.AuditEntry{
		Action:      "delete_event",
		TargetID:    eventID.Hex(),
		PerformedBy: adminUID,
		Timestamp:   s.now().Unix(),
		Details:     fmt.Sprintf("signups_removed=%d", removed),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		zap.L().Warn("audit append failed", zap.String("action", "delete_event"), zap.Error(err))
	}
	return nil
}

func (s *EventService) Get(ctx context.Context, eventID primitive.ObjectID) (*models.Event, error) {
	return s.events.Get(ctx, eventID)
}

func (s *EventService) List(ctx context.Context, publicOnly bool) ([]models.Event, error) {
	return s.events.List(ctx, publicOnly)
}

// Signup validates the submitted form against the event's declared fields and
// persists the record. The stored formData is exactly what was submitted.
func (s *EventService) Signup(ctx context.Context, eventID primitive.ObjectID, formData map[string]string, ip string) (*models.EventSignup, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.NoSignupNeeded || !event.SignupOpen {
		return nil, apperrors.ErrSignupClosed
	}

	if err := ValidateFormData(event.FormFields, formData); err != nil {
		return nil, err
	}

	signup := &models.EventSignup{
		EventID:     eventID,
		FormData:    formData,
		SubmittedAt: s.now().Unix(),
		IPAddress:   ip,
	}
	if err := s.signups.Insert(ctx, signup, event.MaxSignups); err != nil {
		return nil, err
	}
	return signup, nil
}

func (s *EventService) ListSignups(ctx context.Context, eventID primitive.ObjectID) ([]models.EventSignup, error) {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.signups.ListByEvent(ctx, eventID)
}

func (s *EventService) SetPaid(ctx context.Context, eventID, signupID primitive.ObjectID, paid bool) error {
	return s.signups.SetPaid(ctx, eventID, signupID, paid)
}

// SignupCount is the current number of signups for an event.
func (s *EventService) SignupCount(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.signups.CountByEvent(ctx, eventID)
}

// ValidateFormData checks the submitted answers against the event's form
// schema. Required fields must be present and non-empty after trimming, and a
// value must match its field's declared type. Values are validated but never
// altered.
func ValidateFormData(fields []models.FormField, formData map[string]string) error {
	var missing, invalid []string
	for _, field := range fields {
		value, ok := formData[field.Key]
		trimmed := strings.TrimSpace(value)
		if !ok || trimmed == "" {
			if field.Required {
				missing = append(missing, field.Key)
			}
			continue
		}
		if !validFieldValue(field.Type, trimmed) {
			invalid = append(invalid, field.Key)
		}
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return &apperrors.ValidationError{Missing: missing, Invalid: invalid}
	}
	return nil
}

func validFieldValue(fieldType, value string) bool {
	switch fieldType {
	case models.FieldTypeEmail:
		at := strings.Index(value, "@")
		return at > 0 && at < len(value)-1
	case models.FieldTypeNumber:
		for _, r := range value {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	default:
		// text, phone and unknown types accept anything non-empty.
		return true
	}
}
