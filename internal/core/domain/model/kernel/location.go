package kernel

import (
	"errors"
	"fmt"
	"math"

	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude in degrees.
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using NewLocation to ensure the coordinate pair is valid.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a WGS84 point (latitude, longitude in degrees).
// Location is an immutable value object: once constructed, both coordinates are
// guaranteed to be inside their valid ranges. The zero value is invalid and
// fails Validate, so a missing location can never be mistaken for (0, 0).
//
// Persistence layers usually store the pair as [lng, lat] (GeoJSON order);
// use Lng and Lat explicitly rather than relying on argument order.
//
// Example:
//
//	loc, err := kernel.NewLocation(12.97, 77.59)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Output: Location(12.970000,77.590000)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a new Location from latitude and longitude.
//
// Parameters:
//   - lat: latitude in degrees, [LatitudeMin..LatitudeMax]
//   - lng: longitude in degrees, [LongitudeMin..LongitudeMax]
//
// Returns:
//   - Location: A valid location instance
//   - error: Joined out-of-range errors for every offending coordinate
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// String returns a human-readable representation, "Location(lat,lng)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

// IsEqual compares two locations for equality.
// Both locations must be properly constructed for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceKm returns the great-circle (haversine) distance to other in kilometres.
// It is a straight-line lower bound for road distance and is used when no
// directions provider is configured.
//
// Example:
//
//	bangalore, _ := kernel.NewLocation(12.97, 77.59)
//	chennai, _ := kernel.NewLocation(13.08, 80.27)
//	km, _ := bangalore.DistanceKm(chennai) // ~290
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1, lat2 := radians(l.lat), radians(other.lat)
	dLat := lat2 - lat1
	dLng := radians(other.lng - l.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a))), nil
}

// setLat sets the latitude with validation.
// Pointer receiver is used only by the constructor; see NewLocation.
func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

// setLng sets the longitude with validation.
func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
