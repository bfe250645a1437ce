package dto

// AvailabilityResponse porciones producibles de un producto en una sucursal.
// RecipeDefined permite a la UI distinguir "sin receta" de "sin stock": ambas
// devuelven cero porciones pero se renderizan distinto.
type AvailabilityResponse struct {
	ProductID     string `json:"product_id"`
	BranchID      string `json:"branch_id"`
	Portions      int64  `json:"portions"`
	RecipeDefined bool   `json:"recipe_defined"`
}
