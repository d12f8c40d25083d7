package draft

import (
	"context"
	"errors"
	"strings"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/lo"
)

type Step int

const (
	StepDetails Step = iota + 1
	StepHours
	StepTypes
	StepReview
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepHours:
		return "hours"
	case StepTypes:
		return "types"
	case StepReview:
		return "review"
	case StepDone:
		return "done"
	}
	return "unknown"
}

var (
	ErrWrongStep = errors.New("action not allowed in the current wizard step")
	ErrNoOwner   = errors.New("wizard has no owner")
)

// RestaurantTypes are the cuisine labels offered in the types step.
var RestaurantTypes = []string{
	"Japans", "Fast Food", "Italiaans", "Mexicaans", "Thais", "Vegan", "Grill",
	"Indiaas", "Veganistisch", "Vegatarisch", "Amerikaans", "Frans", "Mediterraans",
}

// RestaurantCommitter stores the finished profile.
type RestaurantCommitter interface {
	UpsertRestaurant(ctx context.Context, profile domain.RestaurantProfile) (domain.RestaurantProfile, error)
}

// Wizard is the creator onboarding flow:
// details -> hours -> types -> review -> done.
// It is a value; every transition returns the next wizard.
type Wizard struct {
	owner string
	step  Step
	draft RestaurantDraft
	types []string
}

func NewWizard(owner string) Wizard {
	return Wizard{owner: owner, step: StepDetails, draft: NewRestaurantDraft()}
}

func (w Wizard) Step() Step             { return w.step }
func (w Wizard) Draft() RestaurantDraft { return w.draft }
func (w Wizard) Types() []string        { return append([]string(nil), w.types...) }

// Update sets a detail field. Allowed before the wizard is done.
func (w Wizard) Update(field Field, value any) (Wizard, error) {
	if w.step == StepDone {
		return w, ErrWrongStep
	}
	next, err := w.draft.With(field, value)
	if err != nil {
		return w, err
	}
	w.draft = next
	return w, nil
}

func (w Wizard) SetDay(day domain.Weekday, hours domain.DayHours) (Wizard, error) {
	if w.step != StepHours {
		return w, ErrWrongStep
	}
	w.draft = w.draft.WithDay(day, hours)
	return w, nil
}

// ToggleType adds the label when absent and removes it otherwise.
func (w Wizard) ToggleType(label string) (Wizard, error) {
	if w.step != StepTypes {
		return w, ErrWrongStep
	}
	if lo.Contains(w.types, label) {
		w.types = lo.Without(w.types, label)
	} else {
		w.types = append(append([]string(nil), w.types...), label)
	}
	return w, nil
}

// Next validates the current step and advances.
func (w Wizard) Next() (Wizard, error) {
	switch w.step {
	case StepDetails:
		if err := w.draft.Validate(WizardDetailsFields...); err != nil {
			return w, err
		}
	case StepHours:
		if err := w.draft.Validate(FieldOpeningHours); err != nil {
			return w, err
		}
	case StepTypes:
	default:
		return w, ErrWrongStep
	}
	w.step++
	return w, nil
}

func (w Wizard) Back() Wizard {
	if w.step > StepDetails && w.step < StepDone {
		w.step--
	}
	return w
}

// Commit writes the profile once, from the review step. The selected types
// become the description.
func (w Wizard) Commit(ctx context.Context, committer RestaurantCommitter) (Wizard, domain.RestaurantProfile, error) {
	if w.step != StepReview {
		return w, domain.RestaurantProfile{}, ErrWrongStep
	}
	if w.owner == "" {
		return w, domain.RestaurantProfile{}, ErrNoOwner
	}
	required := append(append([]Field(nil), WizardDetailsFields...), FieldOpeningHours)
	if err := w.draft.Validate(required...); err != nil {
		return w, domain.RestaurantProfile{}, err
	}

	profile := w.draft.Profile(w.owner)
	if len(w.types) > 0 {
		profile.Description = strings.Join(w.types, ", ")
	}
	saved, err := committer.UpsertRestaurant(ctx, profile)
	if err != nil {
		return w, domain.RestaurantProfile{}, err
	}
	w.step = StepDone
	w.draft = FromProfile(saved)
	return w, saved, nil
}
