package session

// Role is the coarse permission class of a logged-in user. The backend
// reports role names in Russian; ParseRole folds them into this closed
// enum so an unhandled role can never silently render an empty UI.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdministrator
	RoleEmployee
	RoleRegularUser
)

// Role identifiers as used in the profile update payload.
const (
	roleIDAdministrator = 1
	roleIDRegularUser   = 2
	roleIDEmployee      = 3
)

// ParseRole maps a backend role name to a Role. Unrecognized or empty
// names map to RoleUnknown.
func ParseRole(name string) Role {
	switch name {
	case "Администратор", "Administrator":
		return RoleAdministrator
	case "Сотрудник", "Employee":
		return RoleEmployee
	case "Пользователь", "User":
		return RoleRegularUser
	default:
		return RoleUnknown
	}
}

// RoleFromID maps a numeric role_id to a Role.
func RoleFromID(id int) Role {
	switch id {
	case roleIDAdministrator:
		return RoleAdministrator
	case roleIDEmployee:
		return RoleEmployee
	case roleIDRegularUser:
		return RoleRegularUser
	default:
		return RoleUnknown
	}
}

// ID returns the numeric role_id for the profile update payload, or 0 for
// RoleUnknown.
func (r Role) ID() int {
	switch r {
	case RoleAdministrator:
		return roleIDAdministrator
	case RoleEmployee:
		return roleIDEmployee
	case RoleRegularUser:
		return roleIDRegularUser
	default:
		return 0
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdministrator:
		return "administrator"
	case RoleEmployee:
		return "employee"
	case RoleRegularUser:
		return "user"
	default:
		return "unknown"
	}
}

// Sidebar selects which navigation menu variant a user sees.
type Sidebar int

const (
	SidebarNone Sidebar = iota
	SidebarAdmin
	SidebarEmployee
	SidebarUser
)

// Capabilities is the set of UI capabilities a resolved identity grants.
// It is recomputed whenever the identity changes and never cached on its
// own.
type Capabilities struct {
	Sidebar Sidebar

	// CanCreateVacancy: employees post vacancies for their company,
	// administrators can post anywhere.
	CanCreateVacancy bool

	// CanModerate covers the administrator-only destructive surface
	// (deleting companies, other users' résumés and reviews).
	CanModerate bool

	// CanApply: only regular users respond to vacancies and publish
	// résumés.
	CanApply bool
}

// CapabilitiesFor derives the capability set for an identity. The switch
// is exhaustive over Role; RoleUnknown (including a logged-out identity)
// gets the minimal set with no sidebar.
func CapabilitiesFor(id Identity) Capabilities {
	switch id.Role {
	case RoleAdministrator:
		return Capabilities{
			Sidebar:          SidebarAdmin,
			CanCreateVacancy: true,
			CanModerate:      true,
		}
	case RoleEmployee:
		return Capabilities{
			Sidebar:          SidebarEmployee,
			CanCreateVacancy: true,
		}
	case RoleRegularUser:
		return Capabilities{
			Sidebar:  SidebarUser,
			CanApply: true,
		}
	case RoleUnknown:
		return Capabilities{Sidebar: SidebarNone}
	default:
		return Capabilities{Sidebar: SidebarNone}
	}
}

// CanDeleteVacancy reports whether id may delete a vacancy owned by the
// company registered under companyLogin: administrators always, employees
// only for their own company.
func CanDeleteVacancy(id Identity, companyLogin string) bool {
	switch id.Role {
	case RoleAdministrator:
		return true
	case RoleEmployee:
		return id.Login != "" && id.Login == companyLogin
	default:
		return false
	}
}
