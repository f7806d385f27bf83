package domain

import "fmt"

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("no matching %s records", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidPayloadError reports a missing or empty required field.
type InvalidPayloadError struct {
	Field string
}

func (e InvalidPayloadError) Error() string {
	return fmt.Sprintf("field %s is required", e.Field)
}

// UnauthorizedError reports that the acting participant lacks the required role.
type UnauthorizedError struct {
	Detail string
}

func (e UnauthorizedError) Error() string {
	return e.Detail
}

// ValidationError reports a value outside an allowed enumerated or range set.
type ValidationError struct {
	Detail string
}

func (e ValidationError) Error() string {
	return e.Detail
}

// TemperatureExcursionError signals an out-of-band reading. The underlying
// temperature log and its derived ledger event are committed before this is
// returned: callers must treat it as recorded-but-flagged, not as a rejected
// write.
type TemperatureExcursionError struct {
	PharmaceuticalID string
	TemperatureC     float64
}

func (e TemperatureExcursionError) Error() string {
	return fmt.Sprintf("temperature excursion recorded for pharmaceutical %s: %.1f°C outside acceptable range", e.PharmaceuticalID, e.TemperatureC)
}
