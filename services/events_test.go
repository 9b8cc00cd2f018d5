package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"societyhub/apperrors"
	"societyhub/models"
)

var nameEmailFields = []models.FormField{
	{Key: "name", Label: "Name", Required: true, Type: models.FieldTypeText},
	{Key: "email", Label: "Email", Required: true, Type: models.FieldTypeEmail},
}

func TestValidateFormData(t *testing.T) {
	tests := []struct {
		name     string
		fields   []models.FormField
		formData map[string]string
		missing  []string
		invalid  []string
	}{
		{
			name:     "all present",
			fields:   nameEmailFields,
			formData: map[string]string{"name": "Ali", "email": "a@b.com"},
		},
		{
			name:     "missing email",
			fields:   nameEmailFields,
			formData: map[string]string{"name": "Ali"},
			missing:  []string{"email"},
		},
		{
			name:     "whitespace only counts as missing",
			fields:   nameEmailFields,
			formData: map[string]string{"name": "   ", "email": "a@b.com"},
			missing:  []string{"name"},
		},
		{
			name:     "invalid email",
			fields:   nameEmailFields,
			formData: map[string]string{"name": "Ali", "email": "not-an-email"},
			invalid:  []string{"email"},
		},
		{
			name: "optional field may be absent",
			fields: []models.FormField{
				{Key: "name", Required: true, Type: models.FieldTypeText},
				{Key: "dietary", Required: false, Type: models.FieldTypeText},
			},
			formData: map[string]string{"name": "Ali"},
		},
		{
			name: "number field rejects letters",
			fields: []models.FormField{
				{Key: "year", Required: true, Type: models.FieldTypeNumber},
			},
			formData: map[string]string{"year": "second"},
			invalid:  []string{"year"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormData(tt.fields, tt.formData)
			if len(tt.missing) == 0 && len(tt.invalid) == 0 {
				assert.NoError(t, err)
				return
			}
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.missing, ve.Missing)
			assert.Equal(t, tt.invalid, ve.Invalid)
		})
	}
}

func seedEvent(t *testing.T, events *fakeEvents, mutate func(*models.Event)) *models.Event {
	t.Helper()
	e := &models.Event{
		Title:      "Freshers BBQ",
		Date:       "2026-09-20",
		StartTime:  "17:00",
		Location:   "South Lawn",
		FormFields: nameEmailFields,
		SignupOpen: true,
		IsPublic:   true,
	}
	if mutate != nil {
		mutate(e)
	}
	require.NoError(t, events.Insert(context.Background(), e))
	return e
}

func TestSignupRejectsMissingFields(t *testing.T) {
	events := newFakeEvents()
	svc := NewEventService(events, newFakeSignups(), newFakeAudit())
	e := seedEvent(t, events, nil)

	_, err := svc.Signup(context.Background(), e.ID, map[string]string{"name": "Ali"}, "1.2.3.4")

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Missing, "email")
	assert.Contains(t, err.Error(), "email")
}

func TestSignupStoresFormDataExactly(t *testing.T) {
	events := newFakeEvents()
	signups := newFakeSignups()
	svc := NewEventService(events, signups, newFakeAudit())
	e := seedEvent(t, events, nil)

	// Values are stored as submitted, untrimmed.
	formData := map[string]string{"name": " Ali ", "email": "a@b.com"}
	signup, err := svc.Signup(context.Background(), e.ID, formData, "1.2.3.4")
	require.NoError(t, err)

	stored, err := signups.ListByEvent(context.Background(), e.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, formData, stored[0].FormData)
	assert.Equal(t, "1.2.3.4", stored[0].IPAddress)
	assert.False(t, stored[0].Paid)
	assert.Equal(t, signup.ID, stored[0].ID)
}

func TestSignupCapacityBoundary(t *testing.T) {
	events := newFakeEvents()
	signups := newFakeSignups()
	svc := NewEventService(events, signups, newFakeAudit())
	e := seedEvent(t, events, func(e *models.Event) { e.MaxSignups = 2 })

	for i := 0; i < 2; i++ {
		_, err := svc.Signup(context.Background(), e.ID,
			map[string]string{"name": "Ali", "email": fmt.Sprintf("a%d@b.com", i)}, "1.2.3.4")
		require.NoError(t, err)
	}

	_, err := svc.Signup(context.Background(), e.ID,
		map[string]string{"name": "Late", "email": "late@b.com"}, "1.2.3.4")

	var ce *apperrors.CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, int64(2), ce.Max)

	count, err := signups.CountByEvent(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSignupClosedOrUnneeded(t *testing.T) {
	events := newFakeEvents()
	svc := NewEventService(events, newFakeSignups(), newFakeAudit())

	closed := seedEvent(t, events, func(e *models.Event) { e.SignupOpen = false })
	_, err := svc.Signup(context.Background(), closed.ID, map[string]string{"name": "A", "email": "a@b.com"}, "ip")
	assert.ErrorIs(t, err, apperrors.ErrSignupClosed)

	unneeded := seedEvent(t, events, func(e *models.Event) { e.NoSignupNeeded = true })
	_, err = svc.Signup(context.Background(), unneeded.ID, map[string]string{"name": "A", "email": "a@b.com"}, "ip")
	assert.ErrorIs(t, err, apperrors.ErrSignupClosed)
}

func TestDeleteEventCascadesSignups(t *testing.T) {
	events := newFakeEvents()
	signups := newFakeSignups()
	audit := newFakeAudit()
	svc := NewEventService(events, signups, audit)
	e := seedEvent(t, events, nil)

	_, err := svc.Signup(context.Background(), e.ID, map[string]string{"name": "Ali", "email": "a@b.com"}, "ip")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), e.ID, "A1"))

	_, err = events.Get(context.Background(), e.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	count, err := signups.CountByEvent(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NotNil(t, audit.last())
	assert.Equal(t, "delete_event", audit.last().Action)
}

func TestSetPaid(t *testing.T) {
	events := newFakeEvents()
	signups := newFakeSignups()
	svc := NewEventService(events, signups, newFakeAudit())
	e := seedEvent(t, events, nil)

	signup, err := svc.Signup(context.Background(), e.ID, map[string]string{"name": "Ali", "email": "a@b.com"}, "ip")
	require.NoError(t, err)

	require.NoError(t, svc.SetPaid(context.Background(), e.ID, signup.ID, true))

	stored, err := signups.ListByEvent(context.Background(), e.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Paid)
}

func TestSetPaidRejectsForeignSignup(t *testing.T) {
	events := newFakeEvents()
	signups := newFakeSignups()
	svc := NewEventService(events, signups, newFakeAudit())
	e := seedEvent(t, events, nil)
	other := seedEvent(t, events, nil)

	signup, err := svc.Signup(context.Background(), e.ID, map[string]string{"name": "Ali", "email": "a@b.com"}, "ip")
	require.NoError(t, err)

	// The signup belongs to e; addressing it through another event's URL
	// must not touch it.
	err = svc.SetPaid(context.Background(), other.ID, signup.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	stored, err := signups.ListByEvent(context.Background(), e.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].Paid)
}

func TestSignupCount(t *testing.T) {
	events := newFakeEvents()
	signups := newFakeSignups()
	svc := NewEventService(events, signups, newFakeAudit())
	e := seedEvent(t, events, nil)
	other := seedEvent(t, events, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Signup(context.Background(), e.ID,
			map[string]string{"name": "Ali", "email": fmt.Sprintf("a%d@b.com", i)}, "ip")
		require.NoError(t, err)
	}

	count, err := svc.SignupCount(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = svc.SignupCount(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
