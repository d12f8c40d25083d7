package draft

import (
	"fmt"
	"strings"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/lo"
)

type Field string

const (
	FieldName         Field = "name"
	FieldStreet       Field = "street"
	FieldStreetNr     Field = "street_nr"
	FieldZipCode      Field = "zip_code"
	FieldCity         Field = "city"
	FieldPhoneNumber  Field = "phone_number"
	FieldWebsite      Field = "website"
	FieldBanner       Field = "banner"
	FieldDescription  Field = "description"
	FieldOpeningHours Field = "opening_hours"
)

// Required field sets. The onboarding wizard, the single page editor and
// the verification check each demand a different set.
var (
	WizardDetailsFields = []Field{FieldName, FieldStreet, FieldCity, FieldStreetNr, FieldZipCode, FieldPhoneNumber}
	EditorFields        = []Field{FieldName, FieldStreet, FieldPhoneNumber}
	VerificationFields  = []Field{
		FieldName, FieldStreet, FieldStreetNr, FieldZipCode, FieldCity,
		FieldPhoneNumber, FieldOpeningHours, FieldDescription,
	}
)

// RestaurantDraft is an unsaved restaurant profile. Every setter returns a
// new draft and leaves the receiver untouched.
type RestaurantDraft struct {
	profile domain.RestaurantProfile
}

func NewRestaurantDraft() RestaurantDraft {
	return RestaurantDraft{profile: domain.RestaurantProfile{OpeningHours: domain.DefaultSchedule()}}
}

func FromProfile(profile domain.RestaurantProfile) RestaurantDraft {
	return RestaurantDraft{profile: profile}
}

// Reset returns the default draft.
func (d RestaurantDraft) Reset() RestaurantDraft {
	return NewRestaurantDraft()
}

// With replaces one field. Text fields take a string and opening_hours takes
// a domain.WeeklySchedule.
func (d RestaurantDraft) With(field Field, value any) (RestaurantDraft, error) {
	if field == FieldOpeningHours {
		schedule, ok := value.(domain.WeeklySchedule)
		if !ok {
			return d, fmt.Errorf("%w: %s", ErrWrongType, field)
		}
		d.profile.OpeningHours = schedule
		return d, nil
	}

	text, ok := value.(string)
	if !ok {
		return d, fmt.Errorf("%w: %s", ErrWrongType, field)
	}
	target := d.textField(field)
	if target == nil {
		return d, fmt.Errorf("unknown restaurant field %q", field)
	}
	*target = text
	return d, nil
}

func (d RestaurantDraft) WithDay(day domain.Weekday, hours domain.DayHours) RestaurantDraft {
	d.profile.OpeningHours = d.profile.OpeningHours.With(day, hours)
	return d
}

// Get returns the current value of field, or nil for an unknown field.
func (d RestaurantDraft) Get(field Field) any {
	if field == FieldOpeningHours {
		return d.profile.OpeningHours
	}
	if target := d.textField(field); target != nil {
		return *target
	}
	return nil
}

// Missing lists the required fields that are blank or invalid.
func (d RestaurantDraft) Missing(required ...Field) []string {
	return lo.FilterMap(required, func(field Field, _ int) (string, bool) {
		if field == FieldOpeningHours {
			return string(field), d.profile.OpeningHours.Validate() != nil
		}
		value, _ := d.Get(field).(string)
		return string(field), strings.TrimSpace(value) == ""
	})
}

func (d RestaurantDraft) Validate(required ...Field) error {
	return newValidationError(d.Missing(required...))
}

// Profile returns the profile to write for owner.
func (d RestaurantDraft) Profile(owner string) domain.RestaurantProfile {
	profile := d.profile
	profile.Owner = owner
	return profile
}

// textField points into the draft's own copy, so callers must hold a
// value receiver.
func (d *RestaurantDraft) textField(field Field) *string {
	switch field {
	case FieldName:
		return &d.profile.Name
	case FieldStreet:
		return &d.profile.Street
	case FieldStreetNr:
		return &d.profile.StreetNr
	case FieldZipCode:
		return &d.profile.ZipCode
	case FieldCity:
		return &d.profile.City
	case FieldPhoneNumber:
		return &d.profile.PhoneNumber
	case FieldWebsite:
		return &d.profile.Website
	case FieldBanner:
		return &d.profile.Banner
	case FieldDescription:
		return &d.profile.Description
	}
	return nil
}
