package catalog

// Accept decides whether an entry should reach the catalog at all
// With hideInvalid off everything passes, including entries whose parse
// failed; some legitimate lightweight formats only report an Unknown role
// and must not be dropped just for lacking role metadata.
// With hideInvalid on, an entry must have parsed and carry a rootable role.
// Updates and DLC are still consumed as children either way, they are
// matched by parent id in Build, not re-checked here
func Accept(entry Entry, hideInvalid bool) bool {
	if !hideInvalid {
		return true
	}
	if entry.Outcome == OutcomeParseError {
		return false
	}
	return entry.Role == RoleBase || entry.Role == RoleUnknown
}
