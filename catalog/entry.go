package catalog

// Role classifies an entry as a base title, an update to one, DLC for one,
// or unknown when the file carries no usable identity metadata
type Role uint8

const (
	RoleUnknown Role = iota
	RoleBase
	RoleUpdate
	RoleDLC
)

func (r Role) String() string {
	switch r {
	case RoleBase:
		return "Base"
	case RoleUpdate:
		return "Update"
	case RoleDLC:
		return "DLC"
	}
	return "Unknown"
}

// Outcome is the parse result the entry source reports for one file.
// Only OutcomeParseError marks an entry as broken; the other values are
// non-fatal and the entry stays usable
type Outcome uint8

const (
	OutcomeParsed Outcome = iota
	OutcomeParseError
	OutcomeNoMetadata
)

// Entry is one discovered title/content unit as reported by the entry source
type Entry struct {
	TitleID  uint64  `json:"titleId,omitempty"`
	ParentID uint64  `json:"parentTitleId,omitempty"` // owning base title for updates and DLC, zero otherwise
	Role     Role    `json:"-"`
	Outcome  Outcome `json:"-"`
	Name     string  `json:"name"`
	Path     string  `json:"path,omitempty"`
	Version  uint32  `json:"version,omitempty"`
	Size     int64   `json:"size,omitempty"`
}

// BaseTitleMask strips the update/DLC bits out of a title id
const BaseTitleMask uint64 = 0xFFFFFFFFFFFFE000

// RoleForTitleID derives the role and the owning base title from the id bit pattern
// Game updates have the same ProgramId as the main application, except with bitmask 0x800 set.
// DLC id's sit above the base title id, so anything else under the same masked id is DLC
func RoleForTitleID(titleID uint64) (Role, uint64) {
	base := titleID & BaseTitleMask
	if base == 0 {
		// Masked out all bits, nothing we can classify
		return RoleUnknown, 0
	}
	if titleID == base {
		return RoleBase, 0
	}
	if titleID&0x800 == 0x800 {
		return RoleUpdate, base
	}
	return RoleDLC, base
}
