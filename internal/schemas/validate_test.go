package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ScoringResult_Valid(t *testing.T) {
	doc := []byte(`{
		"overall_score": 82.5,
		"word_count": 120,
		"per_criterion": [
			{
				"criterion": "Content & Structure",
				"metric": "Salutation Level",
				"score": 4,
				"max_score": 5,
				"feedback": "Good greeting.",
				"details": {"keywords_found": ["hello everyone"], "calculated_value": 4, "reasoning": "tier match"}
			}
		]
	}`)

	assert.NoError(t, Validate(ScoringResultSchema, doc))
}

func TestValidate_ScoringResult_MissingField(t *testing.T) {
	doc := []byte(`{"overall_score": 82.5, "per_criterion": []}`)

	err := Validate(ScoringResultSchema, doc)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.NotEmpty(t, ve.Errors)
}

func TestValidate_ScoringResult_WrongType(t *testing.T) {
	doc := []byte(`{"overall_score": "eighty", "word_count": 10, "per_criterion": []}`)

	err := Validate(ScoringResultSchema, doc)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
}

func TestValidate_Rubric_Valid(t *testing.T) {
	doc := []byte(`{
		"criteria": [
			{"name": "Delivery", "total_weight": 30, "metrics": [{"metric_name": "WPM", "weight": 10}]}
		]
	}`)

	assert.NoError(t, Validate(RubricSchema, doc))
}

func TestValidate_Rubric_CriteriaNotAList(t *testing.T) {
	doc := []byte(`{"criteria": {"name": "Delivery"}}`)

	err := Validate(RubricSchema, doc)
	require.Error(t, err)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nonexistent", []byte(`{}`))
	require.Error(t, err)

	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}
