package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/actorvote/internal/domain"
)

// ActorResponse is the full wire representation of an actor.
type ActorResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Vote int       `json:"vote"`
}

// CreateActorRequest is the body of POST /actors. Any id or vote sent by
// the client is not part of this shape and is dropped during decoding.
type CreateActorRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// normalize trims the name so the length limit applies to what is stored.
func (r *CreateActorRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// VoteRequest is the vote-only shape accepted by the upvote and downvote
// actions. Both fields are optional, so an empty body is valid. The vote
// value is checked for shape but never applied: a vote always moves the
// tally by exactly one.
//
// vote may be omitted but not null. It accepts an integral JSON number
// (5 or 5.0) or a string holding one ("5"), within the 32-bit range.
type VoteRequest struct {
	ID   json.RawMessage `json:"id,omitempty"` // read-only, ignored
	Vote json.RawMessage `json:"vote,omitempty" validate:"omitempty,notnull,jsonint,int32range"`
}

func actorToResponse(a domain.Actor) ActorResponse {
	return ActorResponse{ID: a.ID, Name: a.Name, Vote: a.Vote}
}

func actorsToResponse(actors []domain.Actor) []ActorResponse {
	out := make([]ActorResponse, len(actors))
	for i, a := range actors {
		out[i] = actorToResponse(a)
	}
	return out
}

var validate = newValidator()

// newValidator reports field names by their JSON tag so error details match
// what the client sent, and registers the checks for raw JSON integers.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notnull", func(fl validator.FieldLevel) bool {
		return string(bytes.TrimSpace(fl.Field().Bytes())) != "null"
	})
	mustRegister(v, "jsonint", func(fl validator.FieldLevel) bool {
		_, ok := parseJSONInt(fl.Field().Bytes())
		return ok
	})
	mustRegister(v, "int32range", func(fl validator.FieldLevel) bool {
		n, ok := parseJSONInt(fl.Field().Bytes())
		return ok && n >= math.MinInt32 && n <= math.MaxInt32
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// parseJSONInt reads a raw JSON value as an integer. Numbers must have no
// fractional part; strings are trimmed and may end in ".0". Values beyond
// int64 are clamped so a later range check still rejects them.
func parseJSONInt(raw []byte) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
		if i := strings.IndexByte(text, '.'); i >= 0 && strings.Trim(text[i+1:], "0") == "" {
			text = text[:i]
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return 0, false
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return n, true
	}
	if raw[0] == '"' {
		return 0, false
	}

	// 5.0 or 1e3: integral, just not written as one.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	switch {
	case f != math.Trunc(f):
		return 0, false
	case f >= math.MaxInt64:
		return math.MaxInt64, true
	case f <= math.MinInt64:
		return math.MinInt64, true
	}
	return int64(f), true
}

// validationError carries field-level failures. It unwraps to
// domain.ErrValidation so callers can treat it like any other bad input.
type validationError struct {
	fields []FieldError
}

func (e *validationError) Error() string {
	if len(e.fields) == 1 {
		return e.fields[0].Message
	}
	return fmt.Sprintf("%d fields are invalid", len(e.fields))
}

func (e *validationError) Unwrap() error {
	return domain.ErrValidation
}

// normalizer is implemented by request bodies that tidy their fields
// before validation.
type normalizer interface {
	normalize()
}

// bindJSON decodes the request body into dst and validates it. An empty
// body leaves dst at its zero value, which is then validated as usual.
// Anything after the first JSON value is rejected.
func bindJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		return decodeError(err)
	default:
		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			if err == nil {
				err = errTrailingData
			}
			return decodeError(err)
		}
	}

	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}

	err = validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &validationError{fields: formatValidationErrors(verrs)}
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

var errTrailingData = errors.New("unexpected data after JSON body")

func decodeError(err error) error {
	var (
		tooLarge *http.MaxBytesError
		typeErr  *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &tooLarge):
		return err
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return &validationError{fields: []FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Field '%s' must be a valid %s", typeErr.Field, jsonKind(typeErr.Type)),
			Code:    "validation_type",
		}}}
	case errors.As(err, &typeErr):
		return fmt.Errorf("%w: request body must be a JSON object", domain.ErrValidation)
	default:
		return fmt.Errorf("%w: malformed JSON body", domain.ErrValidation)
	}
}

// jsonKind names a Go type the way a JSON client would think of it.
func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}

func formatValidationErrors(errs validator.ValidationErrors) []FieldError {
	details := make([]FieldError, 0, len(errs))
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "max":
			if err.Kind() == reflect.String {
				message = fmt.Sprintf("Field '%s' must not exceed %s characters", err.Field(), err.Param())
			} else {
				message = fmt.Sprintf("Field '%s' must be at most %s", err.Field(), err.Param())
			}
		case "min":
			message = fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param())
		case "notnull":
			message = fmt.Sprintf("Field '%s' may not be null", err.Field())
		case "jsonint":
			message = fmt.Sprintf("Field '%s' must be a valid integer", err.Field())
		case "int32range":
			message = fmt.Sprintf("Field '%s' must be between %d and %d", err.Field(), math.MinInt32, math.MaxInt32)
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, FieldError{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}
