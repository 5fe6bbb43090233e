// Package tables defines the record types flowing through the refinery: the
// raw (bronze) shapes as they arrive from the two source systems, and the
// cleansed (silver) shapes the pipelines publish. Raw fields that may be
// absent are pointers; silver fields are fully populated except where a null
// date is a documented output (open-ended product versions, unrepairable
// dates).
package tables

// Entity identifies one of the six reconciled entities.
type Entity string

// String returns the string representation of an entity.
func (e Entity) String() string {
	return string(e)
}

// Table returns the silver table name an entity's pipeline replaces.
func (e Entity) Table() string {
	return string(e)
}

// The six entities.
const (
	EntityCustomers    Entity = "customers"
	EntityProducts     Entity = "products"
	EntitySales        Entity = "sales"
	EntityDemographics Entity = "demographics"
	EntityLocations    Entity = "locations"
	EntityCategories   Entity = "categories"
)

// Entities returns all entities in their canonical processing order.
func Entities() []Entity {
	return []Entity{
		EntityCustomers,
		EntityProducts,
		EntitySales,
		EntityDemographics,
		EntityLocations,
		EntityCategories,
	}
}

// IsValid reports whether the entity is one of the six known entities.
func (e Entity) IsValid() bool {
	switch e {
	case EntityCustomers, EntityProducts, EntitySales,
		EntityDemographics, EntityLocations, EntityCategories:
		return true
	default:
		return false
	}
}
