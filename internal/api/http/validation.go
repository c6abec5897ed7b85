package http

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input limits for request fields
const (
	MaxIDLength       = 128
	MaxCategoryLength = 32
	MaxRequestSize    = 64 * 1024
)

var (
	safeIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	toolIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9_-]+(\.[a-zA-Z0-9_-]+)+$`)
	categoryPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// validateString validates a string field with length and content checks
func validateString(value, fieldName string, maxLen int, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}

	if utf8.RuneCountInString(value) > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}
	return nil
}

// ValidateID validates a service ID
func ValidateID(id, fieldName string) error {
	if err := validateString(id, fieldName, MaxIDLength, true); err != nil {
		return err
	}
	if !safeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}
	return nil
}

// ValidateToolID validates a "<service>.<tool>" identifier
func ValidateToolID(id string) error {
	if err := validateString(id, "tool_id", MaxIDLength, true); err != nil {
		return err
	}
	if !toolIDPattern.MatchString(id) {
		return fmt.Errorf("tool_id must look like service.tool (alphanumeric, dots, hyphens, and underscores)")
	}
	return nil
}

// ValidateCategory validates an optional category filter
func ValidateCategory(category string) error {
	if err := validateString(category, "category", MaxCategoryLength, false); err != nil {
		return err
	}
	if category != "" && !categoryPattern.MatchString(category) {
		return fmt.Errorf("category must contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}
