package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	maxTweetLen    = 280
	maxNameLen     = 50
	maxPhoneDigits = 15
	maxPasswordLen = 72 // bcrypt input limit
	minPasswordLen = 4
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\- ]*$`)

// IsValidTweetText checks the compose-time bounds: non-blank, at most
// 280 characters.
//
// Returns (true, "") if valid, or (false, "error message") if invalid.
func IsValidTweetText(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, "Tweet text must not be empty"
	}
	if len([]rune(text)) > maxTweetLen {
		return false, fmt.Sprintf("Tweet text must be at most %d characters", maxTweetLen)
	}
	return true, ""
}

func IsValidName(name string) (bool, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, "Name must not be empty"
	}
	if len([]rune(name)) > maxNameLen {
		return false, fmt.Sprintf("Name must be at most %d characters", maxNameLen)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false, "Name contains non-printable characters"
		}
	}
	return true, ""
}

func IsValidEmail(email string) (bool, string) {
	if !emailRegex.MatchString(email) {
		return false, "Email address is not valid"
	}
	return true, ""
}

func IsValidPhone(phone string) (bool, string) {
	if !phoneRegex.MatchString(phone) {
		return false, "Phone number may only contain digits, spaces, - and a leading +"
	}
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits == 0 || digits > maxPhoneDigits {
		return false, fmt.Sprintf("Phone number must have 1 to %d digits", maxPhoneDigits)
	}
	return true, ""
}

func IsValidPassword(pwd string) (bool, string) {
	if len(pwd) < minPasswordLen {
		return false, fmt.Sprintf("Password must be at least %d characters", minPasswordLen)
	}
	if len(pwd) > maxPasswordLen {
		return false, fmt.Sprintf("Password must be at most %d characters", maxPasswordLen)
	}
	return true, ""
}
