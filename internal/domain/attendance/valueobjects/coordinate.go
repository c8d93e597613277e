package valueobjects

import "math"

const earthRadiusMeters = 6371000.0

// Coordinate is a client-reported GPS fix. Accuracy is the reported radius
// of confidence in meters; nil means the device did not report one.
type Coordinate struct {
	Lat            float64
	Lng            float64
	AccuracyMeters *float64
}

// DistanceMeters computes the great-circle (haversine) distance to another
// point in meters.
func (c Coordinate) DistanceMeters(lat, lng float64) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := lat * math.Pi / 180
	dLat := (lat - c.Lat) * math.Pi / 180
	dLng := (lng - c.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// AccuracyWithin reports whether the fix is precise enough. An absent
// accuracy reading is treated as acceptable.
func (c Coordinate) AccuracyWithin(maxMeters float64) bool {
	if c.AccuracyMeters == nil {
		return true
	}
	return *c.AccuracyMeters <= maxMeters
}
