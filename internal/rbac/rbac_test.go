package rbac

import "testing"

func TestCan(t *testing.T) {
	cases := []struct {
		role    Role
		action  Action
		allowed bool
	}{
		{RoleViewer, ActionRead, true},
		{RoleViewer, ActionExecute, false},
		{RoleViewer, ActionPlan, false},
		{RoleViewer, ActionAdmin, false},
		{RoleOperator, ActionRead, true},
		{RoleOperator, ActionExecute, true},
		{RoleOperator, ActionPlan, false},
		{RoleOperator, ActionAdmin, false},
		{RolePlanner, ActionRead, true},
		{RolePlanner, ActionExecute, true},
		{RolePlanner, ActionPlan, true},
		{RolePlanner, ActionAdmin, false},
		{RoleAdmin, ActionRead, true},
		{RoleAdmin, ActionPlan, true},
		{RoleAdmin, ActionAdmin, true},
		{Role("ghost"), ActionRead, false},
	}
	for _, tc := range cases {
		if got := Can(tc.role, tc.action); got != tc.allowed {
			t.Fatalf("Can(%s, %s) = %v, expected %v", tc.role, tc.action, got, tc.allowed)
		}
	}
}

func TestNormalize(t *testing.T) {
	if Normalize("planner") != RolePlanner {
		t.Fatal("planner should normalize to itself")
	}
	if Normalize("") != RoleViewer {
		t.Fatal("empty role should normalize to viewer")
	}
	if Normalize("superuser") != RoleViewer {
		t.Fatal("unknown role should normalize to viewer")
	}
}
