package user

type Permission string

const (
	// Attendance
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceImport  Permission = "attendance.import"

	// Shift plans
	PermissionShiftPlanView   Permission = "shift_plan.view"
	PermissionShiftPlanManage Permission = "shift_plan.manage"

	// Rates
	PermissionRatesView   Permission = "rates.view"
	PermissionRatesManage Permission = "rates.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceImport,
		PermissionShiftPlanView,
		PermissionShiftPlanManage,
		PermissionRatesView,
		PermissionRatesManage,
		PermissionReportsView,
	},
	RoleManager: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceImport,
		PermissionShiftPlanView,
		PermissionShiftPlanManage,
		PermissionRatesView,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionAttendanceCreate,
		PermissionShiftPlanView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
