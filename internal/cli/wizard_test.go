package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireValue(t *testing.T) {
	check := requireValue("course name")
	assert.NoError(t, check("Calculus"))
	assert.EqualError(t, check(""), "course name is required")
}

func TestValidatePositiveInt(t *testing.T) {
	assert.NoError(t, validatePositiveInt(""))
	assert.NoError(t, validatePositiveInt("14"))
	assert.Error(t, validatePositiveInt("0"))
	assert.Error(t, validatePositiveInt("-3"))
	assert.Error(t, validatePositiveInt("soon"))
}

func TestParsePositiveInt(t *testing.T) {
	assert.Equal(t, 14, parsePositiveInt("14", 30))
	assert.Equal(t, 30, parsePositiveInt("", 30))
	assert.Equal(t, 30, parsePositiveInt("nope", 30))
	assert.Equal(t, 30, parsePositiveInt("-1", 30))
}
