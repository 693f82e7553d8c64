// Package weatherapi provides an HTTP client for the weather collaborator:
// place autocomplete and details, current/daily/hourly weather, favorites
// persistence and icon URLs.
//
// Weather payloads are returned as raw JSON so callers can cache them and
// re-render without another request. Failures are typed: *TransportError
// for network or decoding problems and *APIError when the collaborator
// reports one through an "error" field or an error status.
package weatherapi
