package domain

import "time"

// User is a node in the org forest. ParentID is a weak back-reference to
// another user's id, never an ownership edge; program-leader and data-viewer
// nodes are roots (empty ParentID expected, though any stored value is
// tolerated and pruned at display time).
type User struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Username    string    `json:"username" bson:"username"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	// PasswordHash is a bcrypt hash; users double as authentication principals.
	PasswordHash string   `json:"-" bson:"password_hash,omitempty"`
	Role         Role     `json:"role" bson:"role"`
	ParentID     string   `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Program      string   `json:"program,omitempty" bson:"program,omitempty"`
	Sites        []string `json:"sites,omitempty" bson:"sites,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// HasSite reports whether the user's site set contains site.
func (u *User) HasSite(site string) bool {
	for _, s := range u.Sites {
		if s == site {
			return true
		}
	}
	return false
}

// SameAttributes reports whether the user's program and site set already equal
// the given values. Order of sites is not significant.
func (u *User) SameAttributes(program string, sites []string) bool {
	if u.Program != program || len(u.Sites) != len(sites) {
		return false
	}
	for _, s := range sites {
		if !u.HasSite(s) {
			return false
		}
	}
	return true
}

// NormalizeRoles corrects a multi-role state read from external storage by
// retaining the first-assigned role and discarding the rest. Returns the role
// kept and whether a correction was applied.
func NormalizeRoles(roles []Role) (Role, bool) {
	if len(roles) == 0 {
		return "", false
	}
	return roles[0], len(roles) > 1
}
