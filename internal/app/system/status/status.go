// internal/app/system/status/status.go
package status

// Shared account/team status values.
const (
	Active   = "active"
	Disabled = "disabled"
)

// IsValid reports whether s is a known status.
func IsValid(s string) bool {
	return s == Active || s == Disabled
}
