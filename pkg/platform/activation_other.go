//go:build !darwin

package platform

// SetActivationPolicy is a no-op outside macOS; only AppKit distinguishes
// accessory apps from regular ones.
func SetActivationPolicy() {}
