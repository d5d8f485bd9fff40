package entity

import "strings"

// Operation is one of the four privilege verbs a module can grant.
type Operation string

const (
	OperationView   Operation = "view"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Operations lists every operation in display order.
var Operations = []Operation{OperationView, OperationCreate, OperationUpdate, OperationDelete}

// Role names as sent by the backend
const (
	RoleSuperAdmin   = "superAdmin"
	RoleAdmin        = "admin"
	RoleRadiologist  = "radiologist"
	RoleReceptionist = "receptionist"
)

// Privilege grants a set of operations on one module.
type Privilege struct {
	Module     string      `json:"module"`
	Operations []Operation `json:"operations"`
}

// Has reports whether the privilege includes op.
func (p Privilege) Has(op Operation) bool {
	for _, o := range p.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// PrivilegeModule is the read-only module catalogue served by /privilege-modules.
type PrivilegeModule struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Operations  []Operation `json:"operations,omitempty"`
}

// IsSuperAdminRole accepts the spellings the backend has used for the super-admin role.
func IsSuperAdminRole(role string) bool {
	switch strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(role)) {
	case "superadmin":
		return true
	}
	return false
}
