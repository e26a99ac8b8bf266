package notification

import (
	"slices"
	"strings"
)

// NormalizeAddress trims and lower-cases an email address.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// ResolveAdminRecipients builds the ordered operator mailbox set from the
// primary and the custom-domain address. The two may be the same mailbox,
// in which case it is notified once.
func ResolveAdminRecipients(primary, secondary string) ([]string, error) {
	var recipients []string
	for _, addr := range []string{primary, secondary} {
		addr = NormalizeAddress(addr)
		if addr == "" || slices.Contains(recipients, addr) {
			continue
		}
		recipients = append(recipients, addr)
	}
	if len(recipients) == 0 {
		return nil, ErrNoAdminConfigured
	}
	return recipients, nil
}
