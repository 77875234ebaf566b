// Package hash provides the running checksum of the snapshot format.
//
// The digest is CRC32-Castagnoli, which Go computes with hardware
// instructions where available.
package hash
