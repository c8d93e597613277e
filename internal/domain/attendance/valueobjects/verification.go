package valueobjects

// WifiStatus is the outcome of the network-presence verification channel.
// DEV_BYPASS is logged distinctly from PASS so operator overrides stay
// auditable.
type WifiStatus string

const (
	WifiPass      WifiStatus = "PASS"
	WifiFail      WifiStatus = "FAIL"
	WifiDevBypass WifiStatus = "DEV_BYPASS"
)

func (w WifiStatus) String() string {
	return string(w)
}

// Passed reports whether this channel outcome satisfies verification.
func (w WifiStatus) Passed() bool {
	return w == WifiPass || w == WifiDevBypass
}

// VerificationMethod records which channel(s) vouched for an accepted punch.
type VerificationMethod string

const (
	MethodWifi     VerificationMethod = "wifi"
	MethodLocation VerificationMethod = "location"
	MethodBoth     VerificationMethod = "both"
	MethodNone     VerificationMethod = "none"
)

func (m VerificationMethod) String() string {
	return string(m)
}

// Label renders the method for timecard display.
func (m VerificationMethod) Label() string {
	switch m {
	case MethodWifi:
		return "Wi-Fi"
	case MethodLocation:
		return "GPS"
	case MethodBoth:
		return "Wi-Fi + GPS"
	default:
		return "—"
	}
}
