package tenant

// Actor is the member attempting an operation, as seen at the interaction
// boundary.
type Actor struct {
	ID            string
	DisplayName   string
	RoleIDs       []string
	Administrator bool
}

// HasRole reports whether the actor holds the given role
func (a Actor) HasRole(roleID string) bool {
	for _, id := range a.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// CanDecide reports whether the actor may approve or reject a report under
// the tenant's settings. With configured approval roles the actor must hold
// at least one of them; otherwise only administrators may decide.
func CanDecide(actor Actor, settings *Settings) bool {
	if settings != nil && len(settings.ApprovalRoleIDs) > 0 {
		for _, roleID := range settings.ApprovalRoleIDs {
			if actor.HasRole(roleID) {
				return true
			}
		}
		return false
	}
	return actor.Administrator
}
