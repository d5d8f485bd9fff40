package entity

// Principal is the authenticated user as the console sees it.
type Principal struct {
	ID           string      `json:"_id"`
	Username     string      `json:"username"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         string      `json:"role"`
	IsSuperAdmin bool        `json:"isSuperAdmin,omitempty"`
	Privileges   []Privilege `json:"privileges"`
}

// SuperAdmin reports whether the principal carries the super-admin role flag.
func (p *Principal) SuperAdmin() bool {
	if p == nil {
		return false
	}
	return p.IsSuperAdmin || IsSuperAdminRole(p.Role)
}

// DisplayName falls back to the username when no name is set.
func (p *Principal) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// Can consults privilege entries. Super-admins can do everything.
func (p *Principal) Can(module string, op Operation) bool {
	if p == nil {
		return false
	}
	if p.SuperAdmin() {
		return true
	}
	for _, priv := range p.Privileges {
		if priv.Module == module && priv.Has(op) {
			return true
		}
	}
	return false
}

// User is a backend account as listed by /users.
type User struct {
	ID         string      `json:"_id"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       string      `json:"role"`
	IsActive   bool        `json:"isActive"`
	Privileges []Privilege `json:"privileges"`
}

// PrivilegesFor returns the operations the user holds on module.
func (u *User) PrivilegesFor(module string) []Operation {
	for _, p := range u.Privileges {
		if p.Module == module {
			return p.Operations
		}
	}
	return nil
}
