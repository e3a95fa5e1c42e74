package validation

import "tourdesk/internal/domain"

// ValidateClient checks the step 1 client selection.
func ValidateClient(c domain.ClientSelection) Result {
	var r Result

	switch c.ClientType {
	case domain.ClientTypeB2C, domain.ClientTypeB2B:
	default:
		r = r.add("clientType", "client type must be B2C or B2B")
	}

	if c.ClientID <= 0 {
		r = r.add("selectedClientId", "a client must be selected")
	}

	return r
}
