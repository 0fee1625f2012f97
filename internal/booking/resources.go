package booking

// ResourceMap assigns staff/resource ids to service ids. Loaded from
// configuration so the compiler stays free of business-specific literals.
type ResourceMap struct {
	byService map[string]string
	fallback  string
}

// NewResourceMap builds the assignment table with a generic fallback
// resource used for any service id not present in the table.
func NewResourceMap(byService map[string]string, fallback string) *ResourceMap {
	if byService == nil {
		byService = map[string]string{}
	}
	return &ResourceMap{byService: byService, fallback: fallback}
}

// Assign returns the resource for a service id. An explicit override (staff
// picked a groomer in the UI) wins over the table.
func (r *ResourceMap) Assign(serviceID, override string) string {
	if override != "" {
		return override
	}
	if id, ok := r.byService[serviceID]; ok {
		return id
	}
	return r.fallback
}
