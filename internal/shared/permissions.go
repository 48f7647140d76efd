package shared

// Platform permission identifiers.
const (
	PermCreate        = "create"
	PermRead          = "read"
	PermUpdate        = "update"
	PermDelete        = "delete"
	PermManageUsers   = "manage_users"
	PermManageCourses = "manage_courses"
	PermViewStudents  = "view_students"
	PermUpdateProfile = "update_profile"
)

// AdminRoleName identifies the protected administrator role. The role under
// this name can never be deleted or renamed.
const AdminRoleName = "Admin"
