package models

// PermissionPolicy governs which requisitions a role may view.
// An empty AllowedPlants set means no plant restriction; a nil MaxAmount
// means no amount ceiling.
type PermissionPolicy struct {
	Role          string   `json:"role"`
	AllowedPlants []string `json:"allowedPlants,omitempty"`
	MaxAmount     *float64 `json:"maxAmount,omitempty"`
}

// AllowsPlant reports whether the policy admits the given plant.
func (p *PermissionPolicy) AllowsPlant(plant string) bool {
	if len(p.AllowedPlants) == 0 {
		return true
	}
	for _, allowed := range p.AllowedPlants {
		if allowed == plant {
			return true
		}
	}
	return false
}

// AllowsAmount reports whether the policy admits the given amount.
func (p *PermissionPolicy) AllowsAmount(amount float64) bool {
	return p.MaxAmount == nil || amount <= *p.MaxAmount
}
