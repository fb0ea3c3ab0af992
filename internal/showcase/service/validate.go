package service

import (
	"strings"
	"unicode"
)

const (
	usernameMinLen = 2
	usernameMaxLen = 30
	passwordMaxLen = 72
)

// usernameSymbols are the punctuation characters allowed in usernames, on top
// of letters, digits and single spaces between words.
const usernameSymbols = "-_=+!@#$%^&*()?><,.'\"`~"

var (
	ErrUsernameNotASCII = Fault("Usernames can only contain ASCII characters")
	ErrUsernameCharset  = Fault("Usernames can only contain letters, numbers, spaces between words, and characters " + usernameSymbols)
	ErrUsernameLength   = Fault("Usernames must be not less than 2 and not more than 30 characters long")
	ErrPasswordEmpty    = Fault("Password must be at least one character long")
	ErrPasswordMismatch = Fault("Passwords do not match")
	ErrPasswordTooLong  = Fault("Passwords cannot be greater than 72 characters or bytes")
)

// ValidateUsername checks a requested username. The check is idempotent:
// stripping disallowed characters, trimming, and collapsing whitespace runs
// over the input, and any difference from the original means the input was
// carrying something it should not. Length limits are in bytes, which is the
// same as characters for the ASCII-only charset.
func ValidateUsername(username string) error {
	for _, r := range username {
		if r > unicode.MaxASCII {
			return ErrUsernameNotASCII
		}
	}

	stripped := strings.TrimSpace(username)
	stripped = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		case strings.ContainsRune(usernameSymbols, r):
			return r
		}
		return -1
	}, stripped)
	stripped = strings.Join(strings.Fields(stripped), " ")
	if stripped != username {
		return ErrUsernameCharset
	}

	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return ErrUsernameLength
	}
	return nil
}

// ValidatePassword checks a new password and its confirmation. The 72 byte
// upper bound is a kept contract from when accounts were hashed with bcrypt;
// argon2id takes longer inputs, but existing callers rely on the message.
func ValidatePassword(password, passwordConfirm string) error {
	if len(password) < 1 {
		return ErrPasswordEmpty
	}
	if password != passwordConfirm {
		return ErrPasswordMismatch
	}
	if len(password) > passwordMaxLen {
		return ErrPasswordTooLong
	}
	return nil
}
