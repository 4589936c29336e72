package model

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Coordinates returns the business location as an orb.Point ([lng, lat]).
// ok is false when the record carries no usable coordinates.
func (b Business) Coordinates() (orb.Point, bool) {
	latRaw := safeGet(b.fields, "coordinates", "latitude")
	lngRaw := safeGet(b.fields, "coordinates", "longitude")
	if latRaw == nil || lngRaw == nil {
		return orb.Point{}, false
	}

	lat, lng := safeFloat(latRaw), safeFloat(lngRaw)
	if lat == 0 && lng == 0 {
		return orb.Point{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return orb.Point{}, false
	}
	return orb.Point{lng, lat}, true
}

// DistanceKm is the great-circle distance between two businesses.
// ok is false if either one lacks coordinates.
func DistanceKm(a, b Business) (float64, bool) {
	pa, ok := a.Coordinates()
	if !ok {
		return 0, false
	}
	pb, ok := b.Coordinates()
	if !ok {
		return 0, false
	}
	return geo.Distance(pa, pb) / 1000, true
}
