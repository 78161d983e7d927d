package order

import "huduma/models"

// transition is one edge of the order lifecycle.
type transition struct {
	from, to models.OrderStatus
}

// transitionActors is the single source of truth for the order lifecycle:
// which edges exist and which roles may drive them. Payment settlement takes
// the pending -> confirmed edge through its own atomic path and does not
// consult this table.
var transitionActors = map[transition][]models.Role{
	{models.OrderPending, models.OrderConfirmed}:    {models.RoleProvider},
	{models.OrderPending, models.OrderCancelled}:    {models.RoleCustomer, models.RoleProvider},
	{models.OrderConfirmed, models.OrderCancelled}:  {models.RoleCustomer, models.RoleProvider},
	{models.OrderConfirmed, models.OrderInProgress}: {models.RoleProvider},
	{models.OrderInProgress, models.OrderCompleted}: {models.RoleProvider},
}

// CanTransition reports whether the (from, to) edge exists at all.
func CanTransition(from, to models.OrderStatus) bool {
	_, ok := transitionActors[transition{from, to}]
	return ok
}

// RoleAllowed reports whether the given role may drive the (from, to) edge.
// It returns false for edges that do not exist.
func RoleAllowed(from, to models.OrderStatus, role models.Role) bool {
	for _, r := range transitionActors[transition{from, to}] {
		if r == role {
			return true
		}
	}
	return false
}
