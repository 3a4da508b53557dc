package symgraph

// TypeID identifies a type symbol in the set's arena.
type TypeID uint32

const (
	// NoTypeID marks the absence of a type reference.
	NoTypeID TypeID = 0
)

// IsValid reports whether the ID refers to an allocated type symbol.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// MemberID identifies a member symbol in the set's arena.
type MemberID uint32

const (
	// NoMemberID marks the absence of a member reference.
	NoMemberID MemberID = 0
)

// IsValid reports whether the ID refers to an allocated member symbol.
func (id MemberID) IsValid() bool { return id != NoMemberID }
