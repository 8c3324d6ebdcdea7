package timeoff

import (
	"testing"

	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPolicyID = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	return errs.ToMap()
}

func TestComposer_Defaults(t *testing.T) {
	c := NewComposer()
	assert.Equal(t, StepPolicy, c.Step())
	assert.Equal(t, RequestTypeSingleDay, c.Draft().RequestType)
	assert.Equal(t, DayPortionFullDay, c.Draft().DayPortion)
	assert.Empty(t, c.Draft().Reason)
}

func TestComposer_StepGating(t *testing.T) {
	c := NewComposer()

	err := c.Next()
	assert.Equal(t, map[string]string{"policy_id": "Debes seleccionar una política."}, fieldErrors(t, err))
	assert.Equal(t, StepPolicy, c.Step())

	d := c.Draft()
	d.PolicyID = testPolicyID
	c.Update(d)
	require.NoError(t, c.Next())
	assert.Equal(t, StepDayType, c.Step())

	d = c.Draft()
	d.RequestType = "HALF_WEEK"
	c.Update(d)
	assert.Contains(t, fieldErrors(t, c.Next()), "request_type")

	d.RequestType = RequestTypeMultiDay
	c.Update(d)
	require.NoError(t, c.Next())
	assert.Equal(t, StepDates, c.Step())

	d = c.Draft()
	d.StartDate = "2025-09-12"
	d.EndDate = "2025-09-10"
	c.Update(d)
	assert.Equal(t, map[string]string{"end_date": "La fecha de fin no puede ser anterior a la fecha de inicio."}, fieldErrors(t, c.Next()))

	d.EndDate = ""
	c.Update(d)
	assert.Equal(t, map[string]string{"end_date": "La fecha de fin es obligatoria para varios días."}, fieldErrors(t, c.Next()))

	d.StartDate = "2025-09-10"
	d.EndDate = "2025-09-12"
	c.Update(d)
	require.NoError(t, c.Next())
	assert.Equal(t, StepReview, c.Step())

	assert.ErrorIs(t, c.Next(), ErrNoNextStep)
}

func TestComposer_BackNeverBelowFirstStep(t *testing.T) {
	c := NewComposer()
	c.Back()
	c.Back()
	assert.Equal(t, StepPolicy, c.Step())

	c, err := Resume(StepDates, Draft{PolicyID: testPolicyID, RequestType: RequestTypeSingleDay})
	require.NoError(t, err)
	c.Back()
	assert.Equal(t, StepDayType, c.Step())
}

func TestComposer_Reset(t *testing.T) {
	c, err := Resume(StepReview, Draft{
		PolicyID:    testPolicyID,
		RequestType: RequestTypeSingleDay,
		StartDate:   "2025-09-10",
		DayPortion:  DayPortionAM,
		Reason:      "Cita médica",
	})
	require.NoError(t, err)

	c.Reset()
	assert.Equal(t, StepPolicy, c.Step())
	assert.Equal(t, DefaultDraft(), c.Draft())
}

func TestResume_CannotSkipSteps(t *testing.T) {
	c, err := Resume(StepReview, Draft{RequestType: RequestTypeMultiDay, StartDate: "2025-09-10", EndDate: "2025-09-12"})
	require.Error(t, err)
	assert.Contains(t, fieldErrors(t, err), "policy_id")
	assert.Equal(t, StepPolicy, c.Step())

	c, err = Resume(StepReview, Draft{PolicyID: testPolicyID, RequestType: RequestTypeMultiDay, StartDate: "2025-09-10"})
	require.Error(t, err)
	assert.Contains(t, fieldErrors(t, err), "end_date")
	assert.Equal(t, StepDates, c.Step())

	_, err = Resume(Step(7), Draft{})
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestComposer_BuildRequiresReview(t *testing.T) {
	c, err := Resume(StepDates, Draft{PolicyID: testPolicyID, RequestType: RequestTypeSingleDay, StartDate: "2025-09-10"})
	require.NoError(t, err)

	_, err = c.Build("emp-1")
	assert.ErrorIs(t, err, ErrDraftIncomplete)
}

func TestComposer_BuildMultiDay(t *testing.T) {
	c, err := Resume(StepReview, Draft{
		PolicyID:    testPolicyID,
		RequestType: RequestTypeMultiDay,
		StartDate:   "2025-09-10",
		EndDate:     "2025-09-12",
		DayPortion:  DayPortionAM,
		Reason:      "  ",
	})
	require.NoError(t, err)

	req, err := c.Build("emp-1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", req.EmployeeID)
	assert.Equal(t, StatusSubmitted, req.Status)
	assert.Equal(t, 3.0, req.TotalDays)
	assert.Nil(t, req.DayPortion)
	assert.Nil(t, req.Reason)
	require.NotNil(t, req.EndDate)
	assert.Equal(t, "2025-09-12", req.EndDate.Format("2006-01-02"))
}

func TestComposer_BuildSingleDay(t *testing.T) {
	tests := []struct {
		portion DayPortion
		want    float64
	}{
		{"", 1},
		{DayPortionFullDay, 1},
		{DayPortionAM, 0.5},
		{DayPortionPM, 0.5},
	}
	for _, tt := range tests {
		t.Run(string(tt.portion), func(t *testing.T) {
			c, err := Resume(StepReview, Draft{
				PolicyID:    testPolicyID,
				RequestType: RequestTypeSingleDay,
				StartDate:   "2025-09-10",
				DayPortion:  tt.portion,
				Reason:      "Trámite",
			})
			require.NoError(t, err)

			req, err := c.Build("emp-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.TotalDays)
			require.NotNil(t, req.DayPortion)
			require.NotNil(t, req.EndDate)
			assert.True(t, req.EndDate.Equal(req.StartDate))
			require.NotNil(t, req.Reason)
			assert.Equal(t, "Trámite", *req.Reason)
		})
	}
}

func TestComposer_BuildRevalidatesEveryStep(t *testing.T) {
	c, err := Resume(StepReview, Draft{PolicyID: testPolicyID, RequestType: RequestTypeSingleDay, StartDate: "2025-09-10"})
	require.NoError(t, err)

	d := c.Draft()
	d.PolicyID = ""
	d.StartDate = "10/09/2025"
	c.Update(d)

	_, err = c.Build("emp-1")
	errs := fieldErrors(t, err)
	assert.Contains(t, errs, "policy_id")
	assert.Contains(t, errs, "start_date")
}

func TestDraft_ReasonTooLong(t *testing.T) {
	d := Draft{Reason: string(make([]rune, 1001))}
	assert.Contains(t, fieldErrors(t, d.ValidateStep(StepReview)), "reason")
}

func TestDraftRequest_Validate(t *testing.T) {
	req := DraftRequest{}
	require.NoError(t, req.Validate())
	assert.Equal(t, StepPolicy, req.Step)
	assert.Equal(t, DraftActionNext, req.Action)

	req = DraftRequest{Step: 9, Action: "jump"}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "step")
	assert.Contains(t, errs, "action")
}

func TestDraft_MessagesAreSpanish(t *testing.T) {
	tests := []struct {
		name  string
		step  Step
		draft Draft
		field string
		want  string
	}{
		{"missing policy", StepPolicy, Draft{}, "policy_id", "Debes seleccionar una política."},
		{"malformed policy", StepPolicy, Draft{PolicyID: "abc"}, "policy_id", "La política seleccionada no es válida."},
		{"request type", StepDayType, Draft{RequestType: "HALF_WEEK"}, "request_type", "Selecciona un tipo de solicitud válido."},
		{"start date format", StepDates, Draft{RequestType: RequestTypeSingleDay, StartDate: "12/09/2025"}, "start_date", "La fecha de inicio debe tener el formato AAAA-MM-DD."},
		{"end date format", StepDates, Draft{RequestType: RequestTypeMultiDay, StartDate: "2025-09-12", EndDate: "mañana"}, "end_date", "La fecha de fin debe tener el formato AAAA-MM-DD."},
		{"day portion", StepDates, Draft{RequestType: RequestTypeSingleDay, StartDate: "2025-09-12", DayPortion: "NIGHT"}, "day_portion", "Selecciona una jornada válida."},
		{"reason", StepReview, Draft{Reason: string(make([]rune, 1001))}, "reason", "El motivo no puede superar los 1000 caracteres."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.draft
			assert.Equal(t, tt.want, fieldErrors(t, d.ValidateStep(tt.step))[tt.field])
		})
	}

	req := DraftRequest{Step: 9, Action: "jump"}
	errs := fieldErrors(t, req.Validate())
	assert.Equal(t, "El paso debe estar entre 1 y 4.", errs["step"])
	assert.Equal(t, "La acción debe ser next, back o reset.", errs["action"])
}
