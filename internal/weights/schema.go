package weights

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const tablesSchema = `{
  "type": "object",
  "required": ["version", "question_count", "scale", "metaprograms", "roles", "competencies"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "question_count": {"type": "integer", "minimum": 1},
    "scale": {
      "type": "object",
      "required": ["min", "max"],
      "properties": {
        "min": {"type": "integer"},
        "max": {"type": "integer"}
      }
    },
    "metaprograms": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "name", "items"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "items": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["index", "weight"],
              "properties": {
                "index": {"type": "integer", "minimum": 0},
                "weight": {"type": "number"},
                "reverse": {"type": "boolean"}
              }
            }
          }
        }
      }
    },
    "roles": {"$ref": "#/definitions/targets"},
    "competencies": {"$ref": "#/definitions/targets"}
  },
  "definitions": {
    "targets": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "name", "weights"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "weights": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["metaprogram", "weight"],
              "properties": {
                "metaprogram": {"type": "string", "minLength": 1},
                "weight": {"type": "number"}
              }
            }
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(tablesSchema)

func checkSchema(doc map[string]interface{}) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: schema validation: %v", ErrInvalidTables, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidTables, strings.Join(errs, "; "))
	}
	return nil
}
