package auth

// Role names form a closed set; every authorization decision goes through
// the predicates below instead of ad hoc string comparison in handlers.
const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleMember  = "member"
)

func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (c *Claims) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}

func (c *Claims) IsTrainer() bool {
	return c.HasRole(RoleTrainer)
}

// IsOwnerOrAdmin is the self-service rule: a caller may act on a resource it
// owns, and admins bypass ownership entirely.
func (c *Claims) IsOwnerOrAdmin(ownerID int) bool {
	return c.UserID == ownerID || c.IsAdmin()
}

// CanManageClass grants trainer-scoped access: the class's designated trainer
// or an admin.
func (c *Claims) CanManageClass(trainerID int) bool {
	return c.UserID == trainerID || c.IsAdmin()
}

// ResolveOwner decides whose resource a create call targets. Only admins may
// create on behalf of another user; everyone else gets their own ID
// regardless of what the payload supplied.
func (c *Claims) ResolveOwner(requested int) int {
	if c.IsAdmin() && requested > 0 {
		return requested
	}
	return c.UserID
}
