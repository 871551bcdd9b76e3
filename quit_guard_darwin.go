//go:build darwin

package main

import "golang.design/x/hotkey"

// quitGuardModifier is the modifier of the platform quit shortcut (Cmd+Q).
const quitGuardModifier = hotkey.ModCmd
