// Package validationpkg implements the credential format rules enforced at signup.
//
// The ledger engine itself never validates credentials; these checks belong to
// the registration surface that sits in front of it.
package validationpkg

// IsValidUsername reports whether the username is at least 3 characters long
// and starts with an uppercase ASCII letter.
func IsValidUsername(username string) bool {
	if len(username) < 3 {
		return false
	}

	return username[0] >= 'A' && username[0] <= 'Z'
}

// IsValidPassword reports whether the password is at least 6 characters long
// and contains an uppercase letter, a lowercase letter, a digit, and one of
// the special characters $, @, & or -.
func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var upper, lower, digit, special bool

	for i := 0; i < len(password); i++ {
		switch c := password[i]; {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case c == '$' || c == '@' || c == '&' || c == '-':
			special = true
		}
	}

	return upper && lower && digit && special
}
