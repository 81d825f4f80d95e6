package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// decodeObject reads a JSON object body with numbers kept as json.Number,
// so integer literals can be told apart from floats during validation.
// An empty body or a JSON null decodes to an empty object.
func decodeObject(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// presentString returns body[key] when it is a string, empty included.
func presentString(body map[string]any, key string) (string, bool) {
	s, ok := body[key].(string)
	return s, ok
}

// stringField returns body[key] when it is a non-empty string.
func stringField(body map[string]any, key string) (string, bool) {
	s, ok := body[key].(string)
	return s, ok && s != ""
}
