package scope

// Scope selects which result origins a search includes.
type Scope string

// Source scope constants.
const (
	// All includes local pages, external pages and member records.
	All      Scope = ""
	Local    Scope = "local"
	External Scope = "bni.com"
	// Members includes only member-directory records.
	Members Scope = "members"
)

// IsValid checks if the scope is one of the supported values.
// Unknown scopes are still accepted by the merger; they simply match nothing.
func (s Scope) IsValid() bool {
	return s == All || s == Local || s == External || s == Members
}

// IncludesIndex reports whether index hits take part in the merge at all.
func (s Scope) IncludesIndex() bool {
	return s != Members
}

// IncludesMembers reports whether member-directory records take part in the merge.
func (s Scope) IncludesMembers() bool {
	return s == All || s == Members
}

// AdmitsHit reports whether an index hit of the given origin passes the scope.
func (s Scope) AdmitsHit(external bool) bool {
	if !s.IncludesIndex() {
		return false
	}
	return s == All || (s == Local && !external) || (s == External && external)
}

// Label returns a bounded metrics label for the scope.
func (s Scope) Label() string {
	switch s {
	case All:
		return "all"
	case Local, External, Members:
		return string(s)
	default:
		return "unknown"
	}
}
