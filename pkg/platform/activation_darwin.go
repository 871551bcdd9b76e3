//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

int
SetActivationPolicy(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    return 0;
}
*/
import "C"
import "log"

// SetActivationPolicy makes the app an accessory (tray-only, no Dock icon)
// on macOS. Windows are still shown on demand.
func SetActivationPolicy() {
	log.Println("Setting ActivationPolicy")
	C.SetActivationPolicy()
}
