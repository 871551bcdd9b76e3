//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

int isAppActive() {
    return [NSApp isActive] ? 1 : 0;
}

void activateApp() {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// IsAppActive reports whether the app currently has focus. The alert
// window uses it to detect the resident clicking away from an active siren.
func IsAppActive() bool {
	return C.isAppActive() == 1
}

// ActivateApp forces the app to the front, ignoring other apps. Used to
// keep the building-alert window on top until it is acknowledged.
func ActivateApp() {
	C.activateApp()
}
