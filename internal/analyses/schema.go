package analyses

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema checks that an extracted object is structurally an analysis:
// required members present with the right JSON types. It deliberately allows
// unknown extra fields and free-form strings so the object the model produced
// is returned to the client unchanged.
const resultSchema = `{
  "type": "object",
  "required": ["jd_analysis", "gap_analysis", "improvements", "optimized_resume"],
  "properties": {
    "jd_analysis": {
      "type": "object",
      "required": ["company", "role", "seniority", "key_requirements"],
      "properties": {
        "company": {"type": "string"},
        "role": {"type": "string"},
        "seniority": {"type": "string"},
        "key_requirements": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["requirement"],
            "properties": {
              "requirement": {"type": "string"},
              "category": {"type": "string"},
              "keywords": {"type": "array", "items": {"type": "string"}}
            }
          }
        }
      }
    },
    "gap_analysis": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["requirement", "match_level"],
        "properties": {
          "requirement": {"type": "string"},
          "match_level": {"type": "string"},
          "current_evidence": {"type": "string"},
          "suggestion": {"type": "string"}
        }
      }
    },
    "line_by_line_changes": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "section": {"type": "string"},
          "item": {"type": "string"},
          "before": {"type": "string"},
          "after": {"type": "string"},
          "reason": {"type": "string"}
        }
      }
    },
    "improvements": {"type": "array", "items": {"type": "string"}},
    "optimized_resume": {
      "type": "object",
      "required": ["header", "summary", "experience", "skills", "education"],
      "properties": {
        "header": {
          "type": "object",
          "required": ["name"],
          "properties": {
            "name": {"type": "string"},
            "title": {"type": "string"},
            "contact": {"type": "string"}
          }
        },
        "summary": {"type": "string"},
        "experience": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "company": {"type": "string"},
              "role": {"type": "string"},
              "duration": {"type": "string"},
              "bullets": {"type": "array", "items": {"type": "string"}}
            }
          }
        },
        "skills": {"type": "array", "items": {"type": "string"}},
        "education": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "institution": {"type": "string"},
              "degree": {"type": "string"},
              "year": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(resultSchema)

// ValidateResult checks the normalized object against the analysis schema.
func ValidateResult(result map[string]any) error {
	doc := gojsonschema.NewGoLoader(result)
	res, err := gojsonschema.Validate(schemaLoader, doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if res.Valid() {
		return nil
	}

	details := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		details = append(details, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(details, "; "))
}
