package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

// ClientTypeHeader lets native clients ask for a session token.
const ClientTypeHeader = "X-Client-Type"

// fieldSets caches the exact json member names accepted per request type.
var fieldSets sync.Map

// decodeStrict parses a JSON object body into dst. Member names must match
// dst's json tags exactly, case included; anything else is rejected, as is
// trailing data.
func decodeStrict(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return apperrors.NewValidationError("request body required", nil)
	}

	var members map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&members); err != nil {
		return invalidPayload(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperrors.NewValidationError("request body must contain a single JSON object", nil)
	}
	if members == nil {
		return apperrors.NewValidationError("request body must be a JSON object", nil)
	}

	allowed := jsonFields(dst)
	var unknown []string
	for name := range members {
		if _, ok := allowed[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return apperrors.NewValidationError(`unknown field "`+unknown[0]+`"`,
			map[string]any{"field": unknown[0], "fields": unknown})
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return invalidPayload(err)
	}
	return nil
}

// jsonFields returns the json member names declared by dst's struct type.
func jsonFields(dst any) map[string]struct{} {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := fieldSets.Load(t); ok {
		return cached.(map[string]struct{})
	}

	fields := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		fields[name] = struct{}{}
	}
	fieldSets.Store(t, fields)
	return fields
}

func invalidPayload(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return apperrors.NewValidationError("request body must be a JSON object", nil)
		}
		return apperrors.NewValidationError("invalid value for "+typeErr.Field,
			map[string]any{"field": typeErr.Field})
	}
	return apperrors.NewValidationError("invalid JSON payload", nil)
}

// wantsToken reports whether the caller is a token client.
func wantsToken(c *fiber.Ctx, requested bool) bool {
	if requested {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Get(ClientTypeHeader))) {
	case "mobile", "android":
		return true
	}
	return false
}
