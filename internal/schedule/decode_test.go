package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePlanJSON_WellFormed(t *testing.T) {
	data := []byte(`{
		"plan": [
			{"day": 1, "date": "2026-02-09", "course": "Math 135", "chapter": "Ch 1", "task": "Read", "estimated_hours": 2.5},
			{"day": 2, "course": "Math 135", "chapter": "Ch 2", "task": "Exercises", "estimated_hours": 3}
		],
		"total_study_days": 2,
		"total_hours": 5.5
	}`)

	plan, err := DecodePlanJSON(data)
	require.NoError(t, err)

	require.Len(t, plan.Plan, 2)
	assert.Equal(t, 1, plan.Plan[0].Day)
	assert.Equal(t, "2026-02-09", plan.Plan[0].Date)
	assert.Equal(t, 2.5, plan.Plan[0].EstimatedHours)
	assert.Equal(t, "", plan.Plan[1].Date)
	assert.Equal(t, 3.0, plan.Plan[1].EstimatedHours)
	assert.Equal(t, 2, plan.TotalStudyDays)
	assert.Equal(t, 5.5, plan.TotalHours)
}

func TestDecodePlanJSON_UnknownFieldsIgnored(t *testing.T) {
	data := []byte(`{
		"plan": [{"day": 1, "course": "C", "chapter": "Ch", "task": "T", "estimated_hours": 1, "mood": "optimistic"}],
		"total_study_days": 1,
		"total_hours": 1,
		"generated_by": "model-x"
	}`)

	plan, err := DecodePlanJSON(data)
	require.NoError(t, err)
	assert.Len(t, plan.Plan, 1)
}

func TestDecodePlanJSON_WrongFieldType(t *testing.T) {
	data := []byte(`{"plan": [{"day": 1, "course": "C", "chapter": "Ch", "task": "T", "estimated_hours": "three"}]}`)

	_, err := DecodePlanJSON(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestDecodePlanJSON_PlanNotAList(t *testing.T) {
	data := []byte(`{"plan": "monday through friday"}`)

	_, err := DecodePlanJSON(data)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestDecodePlanJSON_MalformedJSON(t *testing.T) {
	_, err := DecodePlanJSON([]byte(`{"plan": [`))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestDecodePlanJSON_TopLevelNotObject(t *testing.T) {
	_, err := DecodePlanJSON([]byte(`[1, 2, 3]`))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestDecodePlanJSON_MissingFieldsZeroValue(t *testing.T) {
	plan, err := DecodePlanJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, plan.Plan)
	assert.Equal(t, 0, plan.TotalStudyDays)
}

func TestDecodePlan_IntegerHoursFromFloats(t *testing.T) {
	// JSON numbers arrive as float64; whole-number days must still decode.
	raw := map[string]any{
		"plan": []any{
			map[string]any{"day": float64(1), "course": "C", "chapter": "Ch", "task": "T", "estimated_hours": float64(2)},
		},
	}

	plan, err := DecodePlan(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Plan[0].Day)
	assert.Equal(t, 2.0, plan.Plan[0].EstimatedHours)
}
