package leads

import "errors"

// ErrLeadNotFound is returned when no row matches the requested phone.
var ErrLeadNotFound = errors.New("leads: lead not found")
