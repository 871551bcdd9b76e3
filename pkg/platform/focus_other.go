//go:build !darwin

package platform

// IsAppActive always reports focused on non-macOS platforms, where Fyne
// keeps the fullscreen alert window on top by itself.
func IsAppActive() bool {
	return true
}

// ActivateApp is a no-op on non-macOS platforms.
func ActivateApp() {}
