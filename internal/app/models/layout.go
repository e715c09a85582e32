package models

// NavItem is one entry of a portal sidebar.
type NavItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon,omitempty"`
}

// Navigation is the sidebar chrome of one portal.
type Navigation struct {
	Items []NavItem `json:"items"`
}

// Nav returns the sidebar for the given role. The chrome is static per
// portal; the active entry is decided by the page being rendered.
func Nav(role Role) Navigation {
	switch role {
	case RoleAdmin:
		return AdminNav
	case RoleLecturer:
		return LecturerNav
	default:
		return StudentNav
	}
}

var AdminNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/admin"},
		{Name: "Students", URL: "/admin/students"},
		{Name: "Lecturers", URL: "/admin/lecturers"},
		{Name: "Courses", URL: "/admin/courses"},
		{Name: "Payments", URL: "/admin/payments"},
		{Name: "Refunds", URL: "/admin/refunds"},
		{Name: "Scholarships", URL: "/admin/scholarships"},
		{Name: "Tuition", URL: "/admin/tuition"},
		{Name: "Announcements", URL: "/admin/announcements"},
	},
}

var LecturerNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/lecturer"},
		{Name: "Courses", URL: "/lecturer/courses"},
		{Name: "Students", URL: "/lecturer/students"},
		{Name: "Exams", URL: "/lecturer/exams"},
		{Name: "Attendance", URL: "/lecturer/attendance"},
		{Name: "Materials", URL: "/lecturer/materials"},
		{Name: "Announcements", URL: "/lecturer/announcements"},
	},
}

var StudentNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/student"},
		{Name: "Registrations", URL: "/student/registrations"},
		{Name: "Exams", URL: "/student/exams"},
		{Name: "Materials", URL: "/student/materials"},
		{Name: "Payments", URL: "/student/payments"},
		{Name: "Scholarships", URL: "/student/scholarships"},
		{Name: "Announcements", URL: "/student/announcements"},
	},
}
