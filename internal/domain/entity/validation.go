package entity

import "strings"

// TextField is the name of the user-supplied text parameter.
const TextField = "textToAnalyze"

// ValidateText rejects text that is empty or consists only of whitespace.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: TextField, Message: "must not be blank"}
	}
	return nil
}
