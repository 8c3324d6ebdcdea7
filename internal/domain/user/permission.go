package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Time off
	PermissionTimeOffViewOwn Permission = "timeoff.view_own"
	PermissionTimeOffCreate  Permission = "timeoff.create"
	PermissionTimeOffViewAll Permission = "timeoff.view_all"
	PermissionTimeOffApprove Permission = "timeoff.approve"

	// Policies
	PermissionPolicyView   Permission = "policy.view"
	PermissionPolicyManage Permission = "policy.manage"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[RoleName][]Permission{
	RoleSuperAdmin: {
		PermissionViewOwnProfile,
		PermissionTimeOffViewOwn,
		PermissionTimeOffCreate,
		PermissionTimeOffViewAll,
		PermissionTimeOffApprove,
		PermissionPolicyView,
		PermissionPolicyManage,
		PermissionUserManage,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionTimeOffViewOwn,
		PermissionTimeOffCreate,
		PermissionTimeOffApprove,
		PermissionPolicyView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionTimeOffViewOwn,
		PermissionTimeOffCreate,
		PermissionPolicyView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role RoleName, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
