//go:build wasm

package internal

// wasm runs a single goroutine scheduler thread; every call shares one driver.
func driverID() int64 {
	return 0
}
