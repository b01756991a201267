package artistloader

// HitRole names the interaction a hit area stands for.
type HitRole uint8

const (
	HitNone           HitRole = iota
	HitToggle                 // enable/disable switch
	HitName                   // artist name, opens the selection menu
	HitStrengthDec            // "<" arrow
	HitStrengthValue          // numeric value, tap to type or drag to scrub
	HitStrengthInc            // ">" arrow
	hitRoleCount
)

func (r HitRole) String() string {
	switch r {
	case HitToggle:
		return "toggle"
	case HitName:
		return "name"
	case HitStrengthDec:
		return "strength-dec"
	case HitStrengthValue:
		return "strength-value"
	case HitStrengthInc:
		return "strength-inc"
	default:
		return "none"
	}
}

// HitArea is a rectangle tagged with an interaction role. Hit areas are
// recomputed on every draw and are never persisted.
type HitArea struct {
	Role HitRole
	Rect Rect
}

// hitAreas stores one rectangle per role in node-local coordinates.
// A zero-area rect means the role was not laid out by the last draw.
type hitAreas [hitRoleCount]Rect

// set records the rect for a role.
func (h *hitAreas) set(role HitRole, r Rect) {
	h[role] = r
}

// get returns the rect for a role and whether it was laid out.
func (h *hitAreas) get(role HitRole) (Rect, bool) {
	r := h[role]
	return r, !r.Empty()
}

// at returns the role under (x, y). Roles are tested in declaration order,
// so the arrows win over the value region where they touch.
func (h *hitAreas) at(x, y float64) HitRole {
	for _, role := range [...]HitRole{HitToggle, HitName, HitStrengthDec, HitStrengthInc, HitStrengthValue} {
		if r := h[role]; !r.Empty() && r.Contains(x, y) {
			return role
		}
	}
	return HitNone
}

// clear discards every stored rect.
func (h *hitAreas) clear() {
	*h = hitAreas{}
}

// list returns the laid-out areas in role order.
func (h *hitAreas) list() []HitArea {
	out := make([]HitArea, 0, hitRoleCount)
	for role := HitToggle; role < hitRoleCount; role++ {
		if r := h[role]; !r.Empty() {
			out = append(out, HitArea{Role: role, Rect: r})
		}
	}
	return out
}
