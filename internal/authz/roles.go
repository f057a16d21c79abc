package authz

const (
	RoleMember     = 10
	RoleStaff      = 20 // manages a church listing and its bookings
	RoleSuperAdmin = 50
)

func IsStaff(roleID int) bool {
	return roleID == RoleStaff || roleID == RoleSuperAdmin
}

func IsSuperAdmin(roleID int) bool {
	return roleID == RoleSuperAdmin
}
