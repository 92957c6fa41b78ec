package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	Day   int     `json:"day"`
	Task  string  `json:"task"`
	Hours float64 `json:"estimated_hours"`
}

type testSchedule struct {
	Plan       []testEntry `json:"plan"`
	TotalHours float64     `json:"total_hours"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"plan":[{"day":1,"task":"Read","estimated_hours":2.5}],"total_hours":2.5}`
	result, err := ExtractJSON[testSchedule](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Plan, 1)
	assert.Equal(t, "Read", result.Plan[0].Task)
	assert.Equal(t, 2.5, result.TotalHours)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"plan\":[{\"day\":1,\"task\":\"Read\",\"estimated_hours\":2}],\"total_hours\":2}\n```"
	result, err := ExtractJSON[testSchedule](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.TotalHours)
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	raw := "Here is your study schedule:\n" +
		`{"plan":[{"day":1,"task":"Read","estimated_hours":3}],"total_hours":3}` +
		"\nGood luck with the exam!"
	result, err := ExtractJSON[testSchedule](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.TotalHours)
}

func TestExtractJSON_FencedBlockWinsOverProseBraces(t *testing.T) {
	raw := "I structured this as {day, task} rows:\n```json\n" +
		`{"plan":[{"day":1,"task":"Read","estimated_hours":1}],"total_hours":1}` +
		"\n```"
	result, err := ExtractJSON[testSchedule](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Plan, 1)
	assert.Equal(t, 1, result.Plan[0].Day)
}

func TestExtractJSON_TopLevelArray(t *testing.T) {
	raw := `[{"day":1,"task":"Read","estimated_hours":2},{"day":2,"task":"Review","estimated_hours":1}]`
	result, err := ExtractJSON[[]testEntry](raw, nil)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Review", result[1].Task)
}

func TestExtractJSON_LineComments(t *testing.T) {
	raw := `{
		"plan": [
			{"day": 1, "task": "Read", "estimated_hours": 2} // first pass
		],
		"total_hours": 2 // sums the plan
	}`
	result, err := ExtractJSON[testSchedule](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.TotalHours)
}

func TestExtractJSON_CommentContainingBrace(t *testing.T) {
	raw := `{
		"plan": [], /* see {day} convention */
		"total_hours": 0
	}`
	result, err := ExtractJSON[testSchedule](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TotalHours)
}

func TestExtractJSON_LeadingDecimalHours(t *testing.T) {
	raw := `{"plan":[{"day":1,"task":"Skim","estimated_hours":.5}],"total_hours":.5}`
	result, err := ExtractJSON[testSchedule](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, result.Plan[0].Hours)
	assert.Equal(t, 0.5, result.TotalHours)
}

func TestExtractJSON_SlashesInsideStringsSurvive(t *testing.T) {
	raw := `{"plan":[{"day":1,"task":"Watch https://example.com/lecture","estimated_hours":1}],"total_hours":1}`
	result, err := ExtractJSON[testSchedule](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Watch https://example.com/lecture", result.Plan[0].Task)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[testSchedule]("I could not produce a schedule.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[testSchedule](`{"plan": broken}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	raw := `{"plan":[],"total_hours":0}`
	validator := func(s testSchedule) error {
		if len(s.Plan) == 0 {
			return fmt.Errorf("plan must not be empty")
		}
		return nil
	}
	_, err := ExtractJSON(raw, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestExtractJSON_ValidationSuccess(t *testing.T) {
	raw := `{"plan":[{"day":1,"task":"Read","estimated_hours":1}],"total_hours":1}`
	validator := func(s testSchedule) error {
		if len(s.Plan) == 0 {
			return fmt.Errorf("plan must not be empty")
		}
		return nil
	}
	result, err := ExtractJSON(raw, validator)
	require.NoError(t, err)
	assert.Len(t, result.Plan, 1)
}

func TestExtractJSON_BracesInsideStringValues(t *testing.T) {
	raw := `{"plan":[{"day":1,"task":"Solve {hard} problems","estimated_hours":2}],"total_hours":2}`
	result, err := ExtractJSON[testSchedule](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Solve {hard} problems", result.Plan[0].Task)
}
