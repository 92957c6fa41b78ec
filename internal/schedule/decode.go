package schedule

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/bxtheory/examplan/internal/domain"
)

// ErrSchemaMismatch is returned when input data cannot be decoded into a
// plan: malformed JSON, a wrongly typed field, or a non-object payload.
// Unknown fields are not an error; they are dropped.
var ErrSchemaMismatch = errors.New("input does not match the plan schema")

// DecodePlan converts a loosely typed, already-parsed structure (such as the
// result of unmarshalling JSON into map[string]any) into a FullPlan. Numeric
// fields accept JSON's float64 representation of integers; string values in
// numeric fields and non-list plan fields fail with ErrSchemaMismatch.
func DecodePlan(raw map[string]any) (domain.FullPlan, error) {
	var plan domain.FullPlan
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &plan,
		TagName: "json",
	})
	if err != nil {
		return domain.FullPlan{}, fmt.Errorf("building plan decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return domain.FullPlan{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return plan, nil
}

// DecodePlanJSON parses raw JSON bytes into a FullPlan. The top level must
// be a JSON object.
func DecodePlanJSON(data []byte) (domain.FullPlan, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.FullPlan{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return DecodePlan(raw)
}
