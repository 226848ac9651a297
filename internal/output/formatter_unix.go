//go:build !windows

package output

// enableANSI returns true on Unix-like systems, where terminals accept
// escape sequences without setup
func enableANSI() bool {
	return true
}
