package draft_test

import (
	"context"
	"strings"
	"testing"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/draft"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type committerMock struct {
	mock.Mock
}

func (m *committerMock) UpsertRestaurant(ctx context.Context, profile domain.RestaurantProfile) (domain.RestaurantProfile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(domain.RestaurantProfile), args.Error(1)
}

func floatPtr(f float64) *float64 { return &f }

func fillDetails(t *testing.T, w draft.Wizard, name string) draft.Wizard {
	t.Helper()
	values := map[draft.Field]string{
		draft.FieldName:        name,
		draft.FieldStreet:      "Veldstraat",
		draft.FieldStreetNr:    "12",
		draft.FieldZipCode:     "9000",
		draft.FieldCity:        "Gent",
		draft.FieldPhoneNumber: "+32 9 123 45 67",
	}
	for field, value := range values {
		var err error
		w, err = w.Update(field, value)
		require.NoError(t, err)
	}
	return w
}

func TestRestaurantDraft_WithIsPure(t *testing.T) {
	original := draft.NewRestaurantDraft()

	updated, err := original.With(draft.FieldName, "Sushi Bar")
	require.NoError(t, err)

	assert.Equal(t, "", original.Get(draft.FieldName))
	assert.Equal(t, "Sushi Bar", updated.Get(draft.FieldName))
}

func TestRestaurantDraft_WithDayKeepsAllDays(t *testing.T) {
	d := draft.NewRestaurantDraft().WithDay(domain.Wednesday, domain.DayHours{Start: "10:00", End: "22:00", Closed: true})

	schedule := d.Get(draft.FieldOpeningHours).(domain.WeeklySchedule)
	assert.True(t, schedule.Day(domain.Wednesday).Closed)
	assert.Equal(t, "10:00", schedule.Day(domain.Wednesday).Start)
	assert.Equal(t, domain.DefaultDayHours, schedule.Day(domain.Monday))

	raw, err := schedule.MarshalJSON()
	require.NoError(t, err)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		assert.Contains(t, string(raw), `"`+day+`"`)
	}
}

func TestRestaurantDraft_WithRejectsWrongType(t *testing.T) {
	d := draft.NewRestaurantDraft()

	_, err := d.With(draft.FieldName, 42)
	assert.ErrorIs(t, err, draft.ErrWrongType)

	_, err = d.With(draft.FieldOpeningHours, "all day")
	assert.ErrorIs(t, err, draft.ErrWrongType)

	_, err = d.With(draft.Field("stars"), "5")
	assert.Error(t, err)
}

func TestRestaurantDraft_Reset(t *testing.T) {
	d, err := draft.NewRestaurantDraft().With(draft.FieldCity, "Gent")
	require.NoError(t, err)

	reset := d.Reset()

	assert.Equal(t, "", reset.Get(draft.FieldCity))
	assert.Equal(t, domain.DefaultSchedule(), reset.Get(draft.FieldOpeningHours))
}

func TestRestaurantDraft_RequiredFieldSets(t *testing.T) {
	d, err := draft.NewRestaurantDraft().With(draft.FieldName, "Sushi Bar")
	require.NoError(t, err)
	d, err = d.With(draft.FieldStreet, "Veldstraat")
	require.NoError(t, err)
	d, err = d.With(draft.FieldPhoneNumber, "123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		required []draft.Field
		want     []string
	}{
		{name: "editor", required: draft.EditorFields, want: nil},
		{name: "wizard details", required: draft.WizardDetailsFields, want: []string{"city", "street_nr", "zip_code"}},
		{name: "verification", required: draft.VerificationFields, want: []string{"street_nr", "zip_code", "city", "description"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			missing := d.Missing(testCase.required...)
			if testCase.want == nil {
				assert.Empty(t, missing)
				assert.NoError(t, d.Validate(testCase.required...))
				return
			}
			assert.Equal(t, testCase.want, missing)
			var validationErr *draft.ValidationError
			assert.ErrorAs(t, d.Validate(testCase.required...), &validationErr)
		})
	}
}

func TestWizard_EmptyNameBlocksWithoutWrite(t *testing.T) {
	committer := new(committerMock)
	w := fillDetails(t, draft.NewWizard("owner-1"), "")

	next, err := w.Next()

	var validationErr *draft.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"name"}, validationErr.Fields)
	assert.Equal(t, draft.StepDetails, next.Step())

	_, _, err = next.Commit(context.Background(), committer)
	assert.ErrorIs(t, err, draft.ErrWrongStep)
	committer.AssertNotCalled(t, "UpsertRestaurant", mock.Anything, mock.Anything)
}

func TestWizard_FullFlowCommitsOnce(t *testing.T) {
	committer := new(committerMock)
	w := fillDetails(t, draft.NewWizard("owner-1"), "Sushi Bar")

	w, err := w.Next()
	require.NoError(t, err)
	require.Equal(t, draft.StepHours, w.Step())

	w, err = w.SetDay(domain.Sunday, domain.DayHours{Start: "09:00", End: "17:00", Closed: true})
	require.NoError(t, err)
	w, err = w.Next()
	require.NoError(t, err)
	require.Equal(t, draft.StepTypes, w.Step())

	w, err = w.ToggleType("Japans")
	require.NoError(t, err)
	w, err = w.ToggleType("Vegan")
	require.NoError(t, err)
	w, err = w.ToggleType("Grill")
	require.NoError(t, err)
	w, err = w.ToggleType("Grill")
	require.NoError(t, err)
	w, err = w.Next()
	require.NoError(t, err)
	require.Equal(t, draft.StepReview, w.Step())

	committer.On("UpsertRestaurant", mock.Anything, mock.MatchedBy(func(p domain.RestaurantProfile) bool {
		return p.Owner == "owner-1" && p.Description == "Japans, Vegan" && p.OpeningHours.Day(domain.Sunday).Closed
	})).Return(domain.RestaurantProfile{ID: 5, Owner: "owner-1", Name: "Sushi Bar"}, nil).Once()

	done, saved, err := w.Commit(context.Background(), committer)

	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.ID)
	assert.Equal(t, draft.StepDone, done.Step())
	committer.AssertExpectations(t)
	committer.AssertNumberOfCalls(t, "UpsertRestaurant", 1)
}

func TestWizard_InvalidHoursBlock(t *testing.T) {
	w := fillDetails(t, draft.NewWizard("owner-1"), "Sushi Bar")
	w, err := w.Next()
	require.NoError(t, err)

	w, err = w.SetDay(domain.Monday, domain.DayHours{Start: "18:00", End: "09:00"})
	require.NoError(t, err)
	w, err = w.Next()

	assert.Error(t, err)
	assert.Equal(t, draft.StepHours, w.Step())
}

func TestWizard_BackAndWrongStep(t *testing.T) {
	w := fillDetails(t, draft.NewWizard("owner-1"), "Sushi Bar")

	_, err := w.ToggleType("Vegan")
	assert.ErrorIs(t, err, draft.ErrWrongStep)

	w, err = w.Next()
	require.NoError(t, err)
	assert.Equal(t, draft.StepDetails, w.Back().Step())
	assert.Equal(t, draft.StepDetails, w.Back().Back().Step())
}

func TestProductDraft_Validate(t *testing.T) {
	tests := []struct {
		name       string
		draft      draft.ProductDraft
		upload     bool
		wantFields []string
	}{
		{name: "valid upload", draft: draft.ProductDraft{Name: "Ramen", Price: floatPtr(12.5), CategoryID: 2}, upload: true},
		{name: "upload without category", draft: draft.ProductDraft{Name: "Ramen", Price: floatPtr(12.5)}, upload: true, wantFields: []string{"category"}},
		{name: "upload without price", draft: draft.ProductDraft{Name: "Ramen", CategoryID: 2}, upload: true, wantFields: []string{"price"}},
		{name: "negative price", draft: draft.ProductDraft{Name: "Ramen", Price: floatPtr(-1), CategoryID: 2}, upload: true, wantFields: []string{"price"}},
		{name: "valid edit without category", draft: draft.ProductDraft{ID: 3, Name: "Ramen", Price: floatPtr(0)}},
		{name: "edit with blank name", draft: draft.ProductDraft{ID: 3, Name: "  ", Price: floatPtr(1)}, wantFields: []string{"name"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var err error
			if testCase.upload {
				err = testCase.draft.ValidateForUpload()
			} else {
				err = testCase.draft.ValidateForEdit()
			}

			if testCase.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var validationErr *draft.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, testCase.wantFields, validationErr.Fields)
		})
	}
}

func TestPostDraft_Validate(t *testing.T) {
	video := strings.NewReader("mp4")

	tests := []struct {
		name       string
		draft      draft.PostDraft
		wantFields []string
	}{
		{
			name:  "valid",
			draft: draft.PostDraft{Title: "Lunch", Items: []draft.PostItemDraft{{Video: video, ProductID: 1}}},
		},
		{
			name:       "no items",
			draft:      draft.PostDraft{Title: "Lunch"},
			wantFields: []string{"items"},
		},
		{
			name:       "item without product",
			draft:      draft.PostDraft{Title: "Lunch", Items: []draft.PostItemDraft{{Video: video}}},
			wantFields: []string{"items[0].product"},
		},
		{
			name:       "blank title and missing video",
			draft:      draft.PostDraft{Items: []draft.PostItemDraft{{ProductID: 1}}},
			wantFields: []string{"title", "items[0].video"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.draft.Validate()
			if testCase.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var validationErr *draft.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, testCase.wantFields, validationErr.Fields)
		})
	}
}

func TestPostDraft_WithProductCopies(t *testing.T) {
	original := draft.PostDraft{Title: "Lunch"}.WithItem(draft.PostItemDraft{Video: strings.NewReader("mp4")})

	linked, err := original.WithProduct(0, 9)
	require.NoError(t, err)

	assert.Equal(t, int64(0), original.Items[0].ProductID)
	assert.Equal(t, int64(9), linked.Items[0].ProductID)

	_, err = original.WithProduct(3, 9)
	assert.Error(t, err)
}
