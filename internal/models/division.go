package models

// Division kinds of the administrative-division catalog
const (
	DivisionRegion       = "regions"
	DivisionProvince     = "provinces"
	DivisionCity         = "cities"
	DivisionMunicipality = "municipalities"
	DivisionBarangay     = "barangays"
)

// Division is a read-only entry of the administrative-division catalog.
// swagger:model Division
type Division struct {
	// Catalog code
	// example: 130000000
	Code string `json:"code"`

	// Display name
	// example: National Capital Region
	Name string `json:"name"`
}
