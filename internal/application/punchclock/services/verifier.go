package services

import (
	"timeclock/internal/domain/attendance"
	vo "timeclock/internal/domain/attendance/valueobjects"
	"timeclock/internal/shared/config"
)

// Verdict is one verification evaluation. FailReason is set iff Passed is
// false and carries the audit reason in channel priority order.
type Verdict struct {
	Passed     bool
	WifiStatus vo.WifiStatus
	Method     vo.VerificationMethod
	Geo        attendance.GeoSnapshot
	FailReason vo.BlockReason
}

// Verifier evaluates both presence channels for a punch. A punch passes
// when either the source network is on the allowlist or the reported fix is
// an accurate, in-range coordinate. Configuration is copied at construction
// so a running evaluation never sees a partial reload.
type Verifier struct {
	allowlist         map[string]bool
	allowlistDisabled bool
	bypassUserIDs     map[string]bool
	siteLat           float64
	siteLng           float64
	radiusMeters      float64
	maxAccuracyMeters float64
}

func NewVerifier(geofence config.GeofenceConfig, wifi config.WifiConfig) *Verifier {
	allowlist := make(map[string]bool, len(wifi.Allowlist))
	for _, ip := range wifi.Allowlist {
		allowlist[ip] = true
	}
	bypass := make(map[string]bool, len(wifi.BypassUserIDs))
	for _, id := range wifi.BypassUserIDs {
		bypass[id] = true
	}
	return &Verifier{
		allowlist:         allowlist,
		allowlistDisabled: wifi.AllowlistDisabled,
		bypassUserIDs:     bypass,
		siteLat:           geofence.SiteLat,
		siteLng:           geofence.SiteLng,
		radiusMeters:      geofence.RadiusMeters,
		maxAccuracyMeters: geofence.MaxAccuracyMeters,
	}
}

// Verify evaluates the wifi and location channels for one punch attempt.
// clientIP must be the first-hop address, never a forwarded header value.
func (v *Verifier) Verify(userID, clientIP string, coord *vo.Coordinate) Verdict {
	wifiStatus := v.checkWifi(userID, clientIP)

	verdict := Verdict{WifiStatus: wifiStatus}

	geoPassed := false
	accuracyOK := false
	inRange := false
	if coord != nil {
		distance := coord.DistanceMeters(v.siteLat, v.siteLng)
		accuracyOK = coord.AccuracyWithin(v.maxAccuracyMeters)
		inRange = distance <= v.radiusMeters
		geoPassed = accuracyOK && inRange

		lat, lng := coord.Lat, coord.Lng
		rangeOK := geoPassed
		verdict.Geo = attendance.GeoSnapshot{
			Lat:            &lat,
			Lng:            &lng,
			AccuracyMeters: coord.AccuracyMeters,
			DistanceMeters: &distance,
			InRange:        &rangeOK,
		}
	}

	wifiPassed := wifiStatus.Passed()
	verdict.Passed = wifiPassed || geoPassed

	switch {
	case wifiPassed && geoPassed:
		verdict.Method = vo.MethodBoth
	case wifiPassed:
		verdict.Method = vo.MethodWifi
	case geoPassed:
		verdict.Method = vo.MethodLocation
	default:
		verdict.Method = vo.MethodNone
		verdict.FailReason = failReason(coord, accuracyOK, inRange)
	}

	return verdict
}

func (v *Verifier) checkWifi(userID, clientIP string) vo.WifiStatus {
	if v.allowlistDisabled || v.bypassUserIDs[userID] {
		return vo.WifiDevBypass
	}
	// An empty allowlist fails closed.
	if clientIP != "" && v.allowlist[clientIP] {
		return vo.WifiPass
	}
	return vo.WifiFail
}

// failReason picks the most specific reason for a fully failed attempt.
func failReason(coord *vo.Coordinate, accuracyOK, inRange bool) vo.BlockReason {
	switch {
	case coord == nil:
		return vo.ReasonNoCoordinate
	case !accuracyOK:
		return vo.ReasonLowAccuracy
	case !inRange:
		return vo.ReasonOutOfRange
	default:
		return vo.ReasonVerificationFailed
	}
}
