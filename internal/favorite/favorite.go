// Package favorite stores the routes a user has starred.
package favorite

import (
	"strings"
)

// Favorite is a saved departure/destination route. At most one row exists
// per ordered code pair.
type Favorite struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	DepartureCode   string `gorm:"column:departure_code;type:varchar(3);not null;uniqueIndex:idx_favorite_route,priority:1"`
	DestinationCode string `gorm:"column:destination_code;type:varchar(3);not null;uniqueIndex:idx_favorite_route,priority:2"`
}

// TableName specifies the table name for GORM
func (Favorite) TableName() string {
	return "favorite"
}

// Route returns the route this favorite saves.
func (f Favorite) Route() Route {
	return NewRoute(f.DepartureCode, f.DestinationCode)
}

// Route is an ordered departure/destination pair of IATA codes.
type Route struct {
	Departure   string
	Destination string
}

// NewRoute builds a route with normalized codes.
func NewRoute(departure, destination string) Route {
	return Route{
		Departure:   normalize(departure),
		Destination: normalize(destination),
	}
}

// Favorite returns the row that would save this route.
func (r Route) Favorite() Favorite {
	return Favorite{DepartureCode: r.Departure, DestinationCode: r.Destination}
}

func (r Route) String() string {
	return r.Departure + " -> " + r.Destination
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
