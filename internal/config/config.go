package config

import (
	"os"
	"strings"
)

// GetOutputDir returns the directory converted and generated files are
// written to when no explicit output path is given.
func GetOutputDir() string {
	dir := os.Getenv("RMI_FORMS_OUTPUT_DIR")
	if dir == "" {
		return "." // Default to the working directory
	}
	return dir
}

// GetDefaultLocale returns the locale used for new snapshots.
func GetDefaultLocale() string {
	locale := os.Getenv("RMI_FORMS_LOCALE")
	if locale == "" {
		return "en-US"
	}
	return locale
}

// IsPrettyOutput returns true if JSON output should be indented.
func IsPrettyOutput() bool {
	v := os.Getenv("RMI_FORMS_PRETTY")
	if v == "" {
		return true // Default to indented output
	}
	switch strings.ToLower(v) {
	case "0", "false", "no", "off":
		return false
	}
	return true
}
