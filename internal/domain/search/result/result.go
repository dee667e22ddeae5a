package result

// Kind is the origin of a ranked entry.
type Kind string

// Entry kinds.
const (
	KindLocal    Kind = "local"
	KindExternal Kind = "external"
	KindMember   Kind = "member"
)

// Hit is a scored item returned by the full-text index.
// Scores are only comparable with other hits from the same index.
type Hit struct {
	id      string
	docType string
	score   float64
	explain string
	fields  map[string]string
}

// NewHit creates an index hit.
func NewHit(id, docType string, score float64, fields map[string]string) Hit {
	return Hit{id: id, docType: docType, score: score, fields: fields}
}

// WithExplanation attaches the executor's score explanation.
func (h Hit) WithExplanation(explain string) Hit {
	h.explain = explain
	return h
}

// ID returns the document identifier.
func (h *Hit) ID() string { return h.id }

// Type returns the document type tag.
func (h *Hit) Type() string { return h.docType }

// Score returns the relevance score.
func (h *Hit) Score() float64 { return h.score }

// Explanation returns the score explanation, if requested.
func (h *Hit) Explanation() string { return h.explain }

// Fields returns the stored document fields.
func (h *Hit) Fields() map[string]string { return h.fields }

// Member is a record from the member directory. Its key carries an encoded
// ordering prefix, e.g. "0.8_id123".
type Member struct {
	key    string
	id     string
	fields map[string]string
}

// NewMember creates a member-directory record.
func NewMember(key, id string, fields map[string]string) Member {
	return Member{key: key, id: id, fields: fields}
}

// Key returns the record key including its score prefix.
func (m *Member) Key() string { return m.key }

// ID returns the member identifier.
func (m *Member) ID() string { return m.id }

// Fields returns the member record fields.
func (m *Member) Fields() map[string]string { return m.fields }

// Entry is one heterogeneous item of a ranked sequence: either a hit or a member.
type Entry struct {
	kind   Kind
	score  float64
	hit    *Hit
	member *Member
}

// FromHit wraps an index hit. external selects KindExternal over KindLocal.
func FromHit(h Hit, external bool) Entry {
	kind := KindLocal
	if external {
		kind = KindExternal
	}
	return Entry{kind: kind, score: h.score, hit: &h}
}

// FromMember wraps a member record with its ordering score.
func FromMember(m Member, score float64) Entry {
	return Entry{kind: KindMember, score: score, member: &m}
}

// Kind returns the entry origin.
func (e *Entry) Kind() Kind { return e.kind }

// Score returns the ordering score.
func (e *Entry) Score() float64 { return e.score }

// Hit returns the wrapped hit, or nil for member entries.
func (e *Entry) Hit() *Hit { return e.hit }

// Member returns the wrapped member, or nil for hit entries.
func (e *Entry) Member() *Member { return e.member }
