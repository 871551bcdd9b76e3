//go:build !darwin

package main

import "golang.design/x/hotkey"

// quitGuardModifier is the modifier of the platform quit shortcut (Ctrl+Q).
const quitGuardModifier = hotkey.ModCtrl
