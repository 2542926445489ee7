// internal/server/schemas.go
package server

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xeipuuv/gojsonschema"

	apperrors "isabella-notion/internal/common/errors"
)

var analyzeConversationSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"conversation": map[string]interface{}{"type": "string"},
	},
	"required": []string{"conversation"},
}

var generateTemplateSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"conversation":      map[string]interface{}{"type": "string"},
		"notion_api_key":    map[string]interface{}{"type": "string", "minLength": 1},
		"template_name":     map[string]interface{}{"type": "string"},
		"style_preferences": map[string]interface{}{"type": "object"},
	},
	"required": []string{"conversation", "notion_api_key"},
}

// bindAndValidate checks the request body against the endpoint's schema and
// decodes it into the typed request struct.
func bindAndValidate(c echo.Context, schema map[string]interface{}, out interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.NewRequestValidationFailedError("request body could not be read")
	}
	if !json.Valid(body) {
		return apperrors.NewRequestValidationFailedError("request body is not valid JSON")
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return apperrors.NewRequestValidationFailedError(err.Error())
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return apperrors.NewRequestValidationFailedError(strings.Join(details, "; "))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewRequestValidationFailedError(err.Error())
	}
	return nil
}
