package draft

import (
	"errors"
	"licaca-meal-log/models"
	"licaca-meal-log/structs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	calls []structs.MealParam
	err   error
}

func (f *fakeSubmitter) CreateMeal(param structs.MealParam) (*models.Meal, error) {
	f.calls = append(f.calls, param)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Meal{ID: "meal-1", Foods: param.Foods}, nil
}

func str(v string) *string { return &v }

func num(v int) *int { return &v }

func filled() Draft {
	d := New()
	d.Foods = "Toast"
	d.Time = "08:00"
	d.PainRating = 2
	return d.UpdateRow(0, Patch{Food: str("Toast"), Rating: num(4)})
}

func TestNew(t *testing.T) {
	d := New()
	assert.Equal(t, "breakfast", d.MealType)
	assert.Equal(t, 0, d.PainRating)
	assert.Equal(t, []Row{{Food: "", Rating: 3, Notes: ""}}, d.Items)
}

func TestAddRow(t *testing.T) {
	d := New().AddRow().AddRow()
	require.Len(t, d.Items, 3)
	for _, row := range d.Items {
		assert.Equal(t, BlankRow(), row)
	}
}

func TestAddRowLeavesOriginalUntouched(t *testing.T) {
	original := New()
	next := original.AddRow()
	assert.Len(t, original.Items, 1)
	assert.Len(t, next.Items, 2)
}

func TestUpdateRowMergesFields(t *testing.T) {
	d := New().AddRow()
	d = d.UpdateRow(1, Patch{Food: str("Coffee")})
	d = d.UpdateRow(1, Patch{Notes: str("black")})

	assert.Equal(t, Row{Food: "Coffee", Rating: 3, Notes: "black"}, d.Items[1])
	assert.Equal(t, BlankRow(), d.Items[0])

	before := d
	after := d.UpdateRow(0, Patch{Rating: num(1)})
	assert.Equal(t, 3, before.Items[0].Rating)
	assert.Equal(t, 1, after.Items[0].Rating)
}

func TestUpdateRowOutOfRange(t *testing.T) {
	d := New()
	assert.Equal(t, d, d.UpdateRow(5, Patch{Food: str("x")}))
	assert.Equal(t, d, d.UpdateRow(-1, Patch{Food: str("x")}))
}

func TestRemoveRow(t *testing.T) {
	d := New().AddRow().AddRow()
	d = d.UpdateRow(0, Patch{Food: str("a")}).
		UpdateRow(1, Patch{Food: str("b")}).
		UpdateRow(2, Patch{Food: str("c")})

	removed := d.RemoveRow(1)
	require.Len(t, removed.Items, 2)
	assert.Equal(t, "a", removed.Items[0].Food)
	assert.Equal(t, "c", removed.Items[1].Food)
	assert.Equal(t, "b", d.Items[1].Food)
}

func TestRemoveLastRowLeavesBlankRow(t *testing.T) {
	d := New().UpdateRow(0, Patch{Food: str("Toast"), Rating: num(5)})

	d = d.RemoveRow(0)
	require.Len(t, d.Items, 1)
	assert.Equal(t, BlankRow(), d.Items[0])
}

func TestReset(t *testing.T) {
	d := filled().AddRow()
	d.Notes = "late"
	assert.Equal(t, New(), d.Reset())
}

func TestCheck(t *testing.T) {
	assert.NoError(t, filled().Check())

	assert.True(t, errors.Is(New().Check(), ErrInvalidRows))
	assert.True(t, errors.Is(filled().UpdateRow(0, Patch{Food: str("   ")}).Check(), ErrInvalidRows))
	assert.True(t, errors.Is(filled().UpdateRow(0, Patch{Rating: num(0)}).Check(), ErrInvalidRows))
	assert.True(t, errors.Is(filled().UpdateRow(0, Patch{Rating: num(6)}).Check(), ErrInvalidRows))
}

func TestParam(t *testing.T) {
	d := filled().AddRow().UpdateRow(1, Patch{Food: str("Jam"), Rating: num(2), Notes: str("sweet")})
	d.SymptomTime = "09:00"

	param := d.Param()
	assert.Equal(t, "Toast", param.Foods)
	assert.Equal(t, "breakfast", param.MealType)
	assert.Equal(t, "08:00", param.Time)
	require.NotNil(t, param.PainRating)
	assert.Equal(t, 2, *param.PainRating)
	assert.Equal(t, "09:00", *param.SymptomTime)
	require.Len(t, param.Items, 2)
	assert.Equal(t, "Jam", param.Items[1].Food)
	assert.Equal(t, 2, *param.Items[1].Rating)
	assert.Equal(t, "sweet", *param.Items[1].Notes)
}

func TestSubmitSuccessResets(t *testing.T) {
	submitter := &fakeSubmitter{}

	next, created, err := filled().Submit(submitter)
	require.NoError(t, err)
	require.Len(t, submitter.calls, 1)
	assert.Equal(t, "meal-1", created.ID)
	assert.Equal(t, New(), next)
}

func TestSubmitInvalidDoesNotCallService(t *testing.T) {
	submitter := &fakeSubmitter{}
	d := filled().AddRow()

	next, created, err := d.Submit(submitter)
	assert.True(t, errors.Is(err, ErrInvalidRows))
	assert.Nil(t, created)
	assert.Empty(t, submitter.calls)
	assert.Equal(t, d, next)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("connection refused")}
	d := filled()

	next, created, err := d.Submit(submitter)
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Len(t, submitter.calls, 1)
	assert.Equal(t, d, next)
}
