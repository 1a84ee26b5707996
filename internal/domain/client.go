package domain

// ContactKind tags how a contact value should be interpreted.
type ContactKind string

const (
	ContactKindPhone ContactKind = "phone"
	ContactKindEmail ContactKind = "email"
	// ContactKindElse is the default for untyped contact values.
	ContactKindElse ContactKind = "else"
)

// Normalize maps an empty kind to ContactKindElse. Unknown values pass
// through unchanged; the tag is advisory, not validated.
func (k ContactKind) Normalize() ContactKind {
	if k == "" {
		return ContactKindElse
	}
	return k
}

// Client is owned by exactly one user. (UserID, Name) is unique.
type Client struct {
	ID     int64
	Name   string
	UserID int64
}

// Contact is owned by exactly one client and never outlives it.
type Contact struct {
	ID       int64
	Kind     ContactKind
	Contact  string
	ClientID int64
}
