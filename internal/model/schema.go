package model

// Schema is the JSON Schema (Draft 2020-12) for the validation
// payload accepted by the /render endpoint and the render command.
//
// The schema is deliberately permissive: it pins down only the
// structural shape the renderer cannot work around (an object at the
// top, an array of objects for fields) and documents the rest without
// constraining it, because malformed scalar values are defaulted
// locally rather than rejected.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/apiverify/reportgen/validation-report.schema.json",
  "title": "API Validation Report",
  "description": "Input payload for PDF report rendering",
  "type": "object",
  "properties": {
    "api_name": {
      "description": "Display title; a fixed default is used when absent"
    },
    "validation_date": {
      "description": "ISO-8601 timestamp; displayed verbatim when unparseable"
    },
    "version": {
      "description": "Optional schema or API version for the metadata line"
    },
    "total_fields_compared": {
      "description": "Non-negative count; numeric strings are coerced, junk defaults to zero, negatives clamp to zero"
    },
    "matched_fields": {
      "description": "Non-negative count; coerced leniently"
    },
    "unmatched_fields": {
      "description": "Non-negative count; coerced leniently"
    },
    "extra_fields": {
      "description": "Non-negative count; coerced leniently"
    },
    "missing_fields": {
      "description": "Non-negative count; coerced leniently"
    },
    "accuracy_score": {
      "description": "Number <= 1 is a fraction, > 1 an already-scaled percentage; non-numeric values are displayed as-is"
    },
    "summary_recommendation": {
      "description": "Optional free-text recommendation"
    },
    "fields": {
      "type": "array",
      "items": { "$ref": "#/$defs/FieldResult" }
    }
  },
  "$defs": {
    "FieldResult": {
      "type": "object",
      "properties": {
        "field_name": {
          "description": "Field identifier; 'name' is accepted as an alias"
        },
        "name": {
          "description": "Alias for field_name"
        },
        "status": {
          "description": "One of matched|unmatched|missing|extra in any casing; unknown values bucket as 'other'"
        },
        "expected_type": {},
        "actual_type": {},
        "expected_format": {},
        "actual_format": {},
        "actual_info": {},
        "issue": {
          "description": "Problem description; falls back to 'description' then 'rationale'"
        },
        "description": {},
        "rationale": {},
        "suggestion": {
          "description": "Optional remediation hint"
        },
        "confidence": {
          "description": "Optional numeric score, displayed only when present"
        }
      }
    }
  }
}`
