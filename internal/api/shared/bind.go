package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meandevstar/atlas-backend/internal/domain"
)

// Shared validator instance; validator.Validate is safe for concurrent
// use.
var validate = validator.New()

// Normalizer lets a request struct canonicalize its fields (trim, lower
// case) after binding and before validation, so downstream code only
// ever sees sanitized values.
type Normalizer interface {
	Normalize()
}

// Bind populates v from the request and validates it. Sources are
// applied in declared precedence order, later sources overriding
// earlier ones: JSON body, then query parameters, then path parameters.
// Query and path values bind through the same json tags as the body.
// On failure it returns a BadRequest domain error carrying the first
// violated constraint, and the domain operation must not run.
func Bind(r *http.Request, v any) error {
	if err := decodeBody(r, v); err != nil {
		return domain.BadRequest("Invalid request format")
	}

	if err := overlayParams(r, v); err != nil {
		return domain.BadRequest("Invalid request format")
	}

	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}

	if err := validate.Struct(v); err != nil {
		return domain.BadRequest(constraintMessage(err))
	}

	return nil
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		// An absent body is fine; validation decides what is required.
		return nil
	}
	return err
}

// overlayParams merges query and then path parameters onto v through a
// JSON round trip, so the same json tags drive all three sources.
func overlayParams(r *http.Request, v any) error {
	params := map[string]string{}

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" {
				continue
			}
			params[key] = rctx.URLParams.Values[i]
		}
	}

	if len(params) == 0 {
		return nil
	}

	encoded, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, v)
}

// constraintMessage renders the first violated constraint as the
// user-facing validation message.
func constraintMessage(err error) string {
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) || len(violations) == 0 {
		return "Invalid request"
	}

	violation := violations[0]
	field := strings.ToLower(violation.Field()[:1]) + violation.Field()[1:]

	switch violation.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "min":
		return fmt.Sprintf("%q is too short", field)
	case "max":
		return fmt.Sprintf("%q is too long", field)
	case "uuid":
		return fmt.Sprintf("%q must be a valid id", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
