package application

import (
	"fmt"
	"os"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "folderPath" -> "folder path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"folderPath":   "folder path",
		"samplePath":   "sample drawing",
		"mappingPath":  "mapping file",
		"outputPath":   "output path",
		"referenceTbl": "reference table",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateDir checks that path names an existing directory
func ValidateDir(fieldName, path string) error {
	if err := ValidateRequired(fieldName, path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s does not exist: %s", formatFieldName(fieldName), path),
		}
	}
	if !info.IsDir() {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is not a folder: %s", formatFieldName(fieldName), path),
		}
	}
	return nil
}

// ValidateFile checks that path names an existing regular file
func ValidateFile(fieldName, path string) error {
	if err := ValidateRequired(fieldName, path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s does not exist: %s", formatFieldName(fieldName), path),
		}
	}
	if info.IsDir() {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is a folder: %s", formatFieldName(fieldName), path),
		}
	}
	return nil
}
