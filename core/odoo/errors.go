package odoo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when authenticate yields no user id.
	ErrInvalidCredentials = errors.New("invalid Odoo credentials")
	// ErrNotConnected is reported by lookups issued before Connect succeeded.
	ErrNotConnected = errors.New("not connected to Odoo")
)

// MissingConfigError lists required connection settings that are empty.
type MissingConfigError struct {
	Missing []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing Odoo variables: %s", strings.Join(e.Missing, ", "))
}
