// Package airport provides the read-only airport reference data and the
// lookups the search screen runs against it.
package airport

import (
	"context"
	"strings"
)

// Airport is a row of the bundled airport dataset.
type Airport struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	IATACode   string `gorm:"column:iata_code;type:varchar(3);not null;uniqueIndex"`
	Name       string `gorm:"column:name;type:text;not null"`
	Passengers int64  `gorm:"column:passengers;not null;default:0"`
	// SearchKey is the upper-cased code and name, matched by Search.
	SearchKey string `gorm:"column:search_key;type:text;not null;default:'';index"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airport"
}

// Lookup answers the airport queries issued by the search screen.
type Lookup interface {
	Search(ctx context.Context, query string) ([]Airport, error)
	Destinations(ctx context.Context, code string) ([]Airport, error)
	ByCodes(ctx context.Context, codes []string) (map[string]Airport, error)
}

// SearchKeyFor folds code and name into the key Search matches against.
// Folding happens only in Go because SQLite's UPPER is ASCII-only.
func SearchKeyFor(code, name string) string {
	return strings.ToUpper(strings.TrimSpace(code) + "\n" + strings.TrimSpace(name))
}

// NormalizeCode trims and upper-cases an IATA code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
