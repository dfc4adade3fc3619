// Package device provides flash.Device implementations: Mem, a
// RAM-backed bank for examples and tests, and Mmap, a file-backed
// memory-mapped bank for flash image tooling. Both banks hold a window
// of absolute addresses and reject anything outside it.
package device
