package location

// DeviceLocationResponse is the gateway's answer for a device's last
// known fix.
type DeviceLocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	FixAge    int     `json:"fix_age_seconds"`
}

type gatewayError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
