package validators

import "errors"

// Record ids are 16-char nanoids over the alphabetic charset. Shape is
// checked before any lookup so malformed ids never hit the database.

const idLength = 16

var ErrIDInvalid = errors.New("malformed id")

func IDValidator(id string) error {
	if len(id) != idLength {
		return ErrIDInvalid
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return ErrIDInvalid
		}
	}

	return nil
}
