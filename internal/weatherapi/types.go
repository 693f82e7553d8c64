package weatherapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Suggestion is one autocomplete prediction.
type Suggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// AutocompleteResponse mirrors /autocomplete.
type AutocompleteResponse struct {
	Predictions []Suggestion `json:"predictions"`
	Status      string       `json:"status,omitempty"`
}

// PlaceDetails mirrors /place_details. Coordinates are pointers so a
// missing field can be told apart from a zero value.
type PlaceDetails struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Geometry Geometry `json:"geometry"`
}

// Geometry wraps the resolved location.
type Geometry struct {
	Location Location `json:"location"`
}

// Location holds optional coordinates.
type Location struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Coordinates returns lat/lng when both are present and non-zero.
func (d PlaceDetails) Coordinates() (lat, lng float64, ok bool) {
	loc := d.Geometry.Location
	if loc.Lat == nil || loc.Lng == nil {
		return 0, 0, false
	}
	if *loc.Lat == 0 || *loc.Lng == 0 {
		return 0, 0, false
	}
	return *loc.Lat, *loc.Lng, true
}

// Favorite is one saved place.
type Favorite struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

// APIError is a collaborator-reported failure: the body carried an "error"
// field, or the status code signalled one.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("api %s: %s", e.Path, e.Message)
}

// TransportError is a network, rate-limit or decoding failure.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// APIMessage returns the collaborator's message when err is an APIError.
func APIMessage(err error) (string, bool) {
	var ae *APIError
	if !errors.As(err, &ae) {
		return "", false
	}
	return ae.Message, true
}

// errorField extracts the "error" member of an object payload. Strings and
// {"message": ...} objects are both accepted; other shapes yield a
// generic message. ok is false when the field is absent or null.
func errorField(body []byte) (msg string, ok bool) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return "", false
	}
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false
	}
	raw := strings.TrimSpace(string(envelope.Error))
	if raw == "" || raw == "null" {
		return "", false
	}

	var s string
	if err := json.Unmarshal(envelope.Error, &s); err == nil {
		return s, true
	}
	var obj struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(envelope.Error, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message, true
		}
		return obj.Status, true
	}
	return "", true
}
