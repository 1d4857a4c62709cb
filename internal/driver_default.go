//go:build !wasm

package internal

import "github.com/petermattis/goid"

// driverID identifies the goroutine calling into a document.
func driverID() int64 {
	return goid.Get()
}
