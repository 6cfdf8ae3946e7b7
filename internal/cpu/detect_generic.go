//go:build !amd64 && !arm64

package cpu

// detectFlags is the fallback for other architectures: only the generic
// level exists.
func detectFlags() Flags {
	return 0
}

// Levels returns no capability levels; the driver runs the generic pass
// only.
func Levels() []Level {
	return nil
}
