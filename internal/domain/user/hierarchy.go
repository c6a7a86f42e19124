package user

import "context"

// maxHierarchyDepth bounds the walk in case stored data already holds a cycle.
const maxHierarchyDepth = 64

// ManagerLookup returns the manager id of userID, nil for top of the chain.
type ManagerLookup func(ctx context.Context, userID uint) (*uint, error)

// WouldCreateCycle reports whether making managerID the manager of userID
// closes a loop, i.e. userID already appears in managerID's chain of managers.
func WouldCreateCycle(ctx context.Context, lookup ManagerLookup, userID, managerID uint) (bool, error) {
	if userID == managerID {
		return true, nil
	}

	current := managerID
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		next, err := lookup(ctx, current)
		if err != nil {
			return false, err
		}
		if next == nil {
			return false, nil
		}
		if *next == userID {
			return true, nil
		}
		current = *next
	}
	return true, nil
}
