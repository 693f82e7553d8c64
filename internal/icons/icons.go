// Package icons maps weather-condition descriptors from the different
// provider vocabularies to display icons.
package icons

import (
	"net/url"
	"strings"
)

// Default is the canonical icon used when nothing else matches.
const Default = "cloudy"

// Daylight is the descriptor's day/night flag. The zero value is unknown.
type Daylight int

const (
	DaylightUnknown Daylight = iota
	Day
	Night
)

// DaylightFrom converts an optional provider flag.
func DaylightFrom(isDay bool, known bool) Daylight {
	switch {
	case !known:
		return DaylightUnknown
	case isDay:
		return Day
	default:
		return Night
	}
}

// Descriptor is the provider's weather-state representation for one render.
type Descriptor struct {
	Condition string
	Daylight  Daylight
	IconURI   string
}

// Reference points at a display icon: either a provider-exact asset (URI)
// or a canonical icon name.
type Reference struct {
	Name string
	URI  string
}

// Provider reports whether the reference is a provider-supplied asset.
func (r Reference) Provider() bool {
	return r.URI != ""
}

// String returns the URI for provider assets and the name otherwise.
func (r Reference) String() string {
	if r.URI != "" {
		return r.URI
	}
	return r.Name
}

// URL returns where the asset can be fetched. Provider URIs are returned
// verbatim; canonical names go through the collaborator's /icon endpoint
// under base.
func (r Reference) URL(base string, dark bool) string {
	if r.URI != "" {
		return r.URI
	}
	name := r.Name
	if name == "" {
		name = Default
	}
	values := url.Values{}
	values.Set("icon", name)
	if dark {
		values.Set("dark", "true")
	}
	return strings.TrimRight(base, "/") + "/icon?" + values.Encode()
}

// Resolve picks the icon for d. First match wins:
//
//  1. provider icon URI
//  2. exact condition lookup in the day or night table
//  3. first table key contained in the condition
//  4. Default
func Resolve(d Descriptor) Reference {
	if uri := strings.TrimSpace(d.IconURI); uri != "" {
		return Reference{URI: uri}
	}

	condition := Normalize(d.Condition)
	if condition == "" {
		return Reference{Name: Default}
	}

	night := d.Daylight == Night
	if e, ok := byKey[condition]; ok {
		return Reference{Name: e.pick(night)}
	}
	for _, e := range table {
		if strings.Contains(condition, e.key) {
			return Reference{Name: e.pick(night)}
		}
	}
	return Reference{Name: Default}
}

// Normalize lower-cases a condition code and folds separators to '_'.
func Normalize(condition string) string {
	c := strings.ToLower(strings.TrimSpace(condition))
	c = strings.NewReplacer(" ", "_", "-", "_").Replace(c)
	return c
}
