package enums

import "fmt"

// SystemRole is the platform-wide role stored on users.
type SystemRole string

const (
	SystemRoleUser  SystemRole = "user"
	SystemRoleAdmin SystemRole = "admin"
)

var validSystemRoles = []SystemRole{
	SystemRoleUser,
	SystemRoleAdmin,
}

// String implements fmt.Stringer.
func (r SystemRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known SystemRole.
func (r SystemRole) IsValid() bool {
	for _, candidate := range validSystemRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseSystemRole converts raw input into a SystemRole.
func ParseSystemRole(value string) (SystemRole, error) {
	for _, candidate := range validSystemRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid system role %q", value)
}

// Theme is the user-selected UI theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

var validThemes = []Theme{
	ThemeLight,
	ThemeDark,
	ThemeSystem,
}

// String implements fmt.Stringer.
func (t Theme) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Theme.
func (t Theme) IsValid() bool {
	for _, candidate := range validThemes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTheme converts raw input into a Theme.
func ParseTheme(value string) (Theme, error) {
	for _, candidate := range validThemes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid theme %q", value)
}

// NormalizeTheme maps unknown persisted values to the system default.
func NormalizeTheme(value string) Theme {
	if t, err := ParseTheme(value); err == nil {
		return t
	}
	return ThemeSystem
}
