// Package sample embeds the fallback validation payload used by the
// standalone render command when no source is reachable.
package sample

import "github.com/apiverify/reportgen/internal/model"

// JSON is the embedded sample payload.
const JSON = `{
  "api_name": "Test API",
  "validation_date": "2025-08-07T10:30:00Z",
  "total_fields_compared": 10,
  "matched_fields": 7,
  "unmatched_fields": 3,
  "accuracy_score": 70,
  "fields": [
    {
      "field_name": "user_id",
      "status": "unmatched",
      "issue": "Type mismatch",
      "expected_type": "integer",
      "actual_type": "string",
      "suggestion": "Convert to integer"
    },
    {
      "field_name": "email",
      "status": "unmatched",
      "issue": "Missing validation",
      "expected_type": "email",
      "actual_type": "string",
      "suggestion": "Add email validation"
    }
  ],
  "summary_recommendation": "Fix type mismatches and add proper validation for email fields."
}`

// Report decodes the embedded sample.
func Report() (*model.ValidationReport, error) {
	return model.Decode([]byte(JSON))
}
