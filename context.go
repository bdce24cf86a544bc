package sessionnav

import "context"

type deviceIDContextKey struct{}

// WithDeviceID attaches the device or installation identifier to ctx. The
// Engine stamps it onto audit events so a backend sink can correlate
// session activity per install.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey{}, deviceID)
}

func deviceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	deviceID, _ := ctx.Value(deviceIDContextKey{}).(string)
	return deviceID
}
