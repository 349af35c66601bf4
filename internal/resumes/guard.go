package resumes

// Decision is the outcome of an ownership check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// CheckOwner allows access only to the resume's owner. It runs on records
// that exist; absence is reported before it is consulted.
func CheckOwner(r Resume, callerID string) Decision {
	if callerID == "" || r.Owner != callerID {
		return Deny
	}
	return Allow
}
