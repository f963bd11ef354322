package controller

// PruneSelection returns the intersection of the selection set with the ids
// currently present in the collection. It is run after every mutation of
// the base collection so stale ids never survive a refetch.
func PruneSelection(selection map[string]struct{}, valid []string) map[string]struct{} {
	pruned := make(map[string]struct{}, len(selection))
	if len(selection) == 0 {
		return pruned
	}
	for _, id := range valid {
		if _, ok := selection[id]; ok {
			pruned[id] = struct{}{}
		}
	}
	return pruned
}
