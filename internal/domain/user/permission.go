package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Work sheets
	PermissionWorkSheetCreate  Permission = "worksheet.create"
	PermissionWorkSheetViewAll Permission = "worksheet.view_all"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeVerify  Permission = "employee.verify"
	PermissionUserManage      Permission = "user.manage"

	// Payroll
	PermissionPayRollCreate  Permission = "payroll.create"
	PermissionPayRollViewAll Permission = "payroll.view_all"
	PermissionPayRollPay     Permission = "payroll.pay"

	// Reports
	PermissionHRSummaryView    Permission = "summary.hr"
	PermissionAdminSummaryView Permission = "summary.admin"

	// Contact inbox
	PermissionContactView Permission = "contact.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionWorkSheetViewAll,
		PermissionEmployeeViewAll,
		PermissionUserManage,
		PermissionPayRollViewAll,
		PermissionPayRollPay,
		PermissionHRSummaryView,
		PermissionAdminSummaryView,
		PermissionContactView,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionWorkSheetViewAll,
		PermissionEmployeeViewAll,
		PermissionEmployeeVerify,
		PermissionPayRollCreate,
		PermissionPayRollViewAll,
		PermissionHRSummaryView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionWorkSheetCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
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
