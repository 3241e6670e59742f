package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMalformedRecord marks a raw document that cannot become an
// IncidentRecord. The only hard requirement is an identifier; every other
// field is optional.
var ErrMalformedRecord = errors.New("malformed incident record")

// NormalizeIncident coerces one loosely typed storage document into the
// canonical IncidentRecord shape. It is a pure transformation: unmapped
// categories fold into Other, and when the anonymous flag is set the
// reporter identity and contact number are dropped here so nothing
// downstream ever sees them.
//
// Documents written by older clients store Firestore-style
// {seconds, nanoseconds} timestamps and bare [lat, lng] location pairs;
// both shapes are accepted alongside the native ones.
func NormalizeIncident(raw map[string]any) (IncidentRecord, error) {
	id := extractID(raw)
	if id == "" {
		return IncidentRecord{}, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}

	rec := IncidentRecord{
		ID:          id,
		Description: stringField(raw, "description"),
		Category:    ParseCategory(stringField(raw, "category")),
		Location:    extractLocation(firstPresent(raw, "location")),
		CreatedAt:   extractTimestamp(firstPresent(raw, "created_at", "createdAt")),
	}

	if flag, ok := firstPresent(raw, "anonymous", "is_anonymous").(bool); ok {
		rec.IsAnonymous = flag
	}

	if rec.IsAnonymous {
		return rec, nil
	}

	rec.ContactNumber = strings.TrimSpace(firstString(raw, "contact_number", "contactNumber"))
	rec.Reporter = extractReporter(firstPresent(raw, "reporter", "user"))

	return rec, nil
}

func extractID(raw map[string]any) string {
	switch v := firstPresent(raw, "_id", "id").(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

func extractReporter(value any) *Reporter {
	m, ok := asMap(value)
	if !ok {
		return nil
	}

	rep := &Reporter{
		UID:   stringField(m, "uid"),
		Name:  stringField(m, "name"),
		Email: stringField(m, "email"),
	}
	if rep.UID == "" && rep.Name == "" && rep.Email == "" {
		return nil
	}
	return rep
}

func extractLocation(value any) *GeoPoint {
	switch v := value.(type) {
	case primitive.A:
		return pairLocation([]any(v))
	case []any:
		return pairLocation(v)
	case []float64:
		if len(v) >= 2 {
			return &GeoPoint{Latitude: v[0], Longitude: v[1]}
		}
		return nil
	default:
		m, ok := asMap(value)
		if !ok {
			return nil
		}
		lat, okLat := asFloat(firstPresent(m, "latitude", "lat"))
		lng, okLng := asFloat(firstPresent(m, "longitude", "lng"))
		if !okLat || !okLng {
			return nil
		}
		return &GeoPoint{Latitude: lat, Longitude: lng}
	}
}

func pairLocation(pair []any) *GeoPoint {
	if len(pair) < 2 {
		return nil
	}
	lat, okLat := asFloat(pair[0])
	lng, okLng := asFloat(pair[1])
	if !okLat || !okLng {
		return nil
	}
	return &GeoPoint{Latitude: lat, Longitude: lng}
}

func extractTimestamp(value any) *time.Time {
	switch v := value.(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	case primitive.DateTime:
		t := v.Time()
		return &t
	default:
		m, ok := asMap(value)
		if !ok {
			return nil
		}
		secs, okSecs := asFloat(firstPresent(m, "seconds", "_seconds"))
		if !okSecs {
			return nil
		}
		nanos, _ := asFloat(firstPresent(m, "nanoseconds", "_nanoseconds"))
		t := time.Unix(int64(secs), int64(nanos))
		return &t
	}
}

func firstPresent(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw map[string]any, keys ...string) string {
	if s, ok := firstPresent(raw, keys...).(string); ok {
		return s
	}
	return ""
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case primitive.M:
		return map[string]any(v), true
	default:
		return nil, false
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
