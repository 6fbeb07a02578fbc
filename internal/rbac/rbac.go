package rbac

type Role string
type Action string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RolePlanner  Role = "planner"
	RoleAdmin    Role = "admin"
)

const (
	ActionRead    Action = "read"
	ActionExecute Action = "execute"
	ActionPlan    Action = "plan"
	ActionAdmin   Action = "admin"
)

func Can(role Role, action Action) bool {
	switch role {
	case RoleAdmin:
		return true
	case RolePlanner:
		return action == ActionRead || action == ActionExecute || action == ActionPlan
	case RoleOperator:
		return action == ActionRead || action == ActionExecute
	case RoleViewer:
		return action == ActionRead
	default:
		return false
	}
}

func Normalize(role string) Role {
	switch Role(role) {
	case RoleViewer, RoleOperator, RolePlanner, RoleAdmin:
		return Role(role)
	default:
		return RoleViewer
	}
}
