package db

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/logging"
)

//go:embed seed/airports.json
var bundledAirports []byte

// rawAirport is one record of the JSON airport dataset.
type rawAirport struct {
	IATACode   string `json:"iata_code"`
	Name       string `json:"name"`
	Passengers int64  `json:"passengers"`
}

// ParseAirports decodes a JSON airport dataset. Records without a three
// letter code or a name are skipped; a repeated code keeps the first record.
func ParseAirports(r io.Reader) ([]airport.Airport, error) {
	var raw []rawAirport
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode airport dataset: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no airport data found")
	}

	seen := make(map[string]struct{}, len(raw))
	airports := make([]airport.Airport, 0, len(raw))
	for _, rec := range raw {
		code := airport.NormalizeCode(rec.IATACode)
		name := strings.TrimSpace(rec.Name)
		if len(code) != 3 || name == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		passengers := rec.Passengers
		if passengers < 0 {
			passengers = 0
		}
		airports = append(airports, airport.Airport{IATACode: code, Name: name, Passengers: passengers})
	}
	if len(airports) == 0 {
		return nil, fmt.Errorf("no valid airports found after parsing")
	}
	return airports, nil
}

// Seed replaces the airport table with the dataset read from r and returns
// the number of airports stored.
func Seed(ctx context.Context, gdb *gorm.DB, r io.Reader, logger *zap.SugaredLogger) (int, error) {
	logger = logging.OrNop(logger)

	airports, err := ParseAirports(r)
	if err != nil {
		return 0, err
	}
	logger.Infow("parsed airport dataset", "airports", len(airports))

	if err := airport.NewRepository(gdb).Replace(ctx, airports); err != nil {
		return 0, fmt.Errorf("store airports: %w", err)
	}
	logger.Infow("imported airports", "airports", len(airports))
	return len(airports), nil
}

// EnsureSeeded loads the bundled dataset when the airport table is empty.
// An existing dataset only gets missing search keys filled in.
func EnsureSeeded(ctx context.Context, gdb *gorm.DB, logger *zap.SugaredLogger) error {
	logger = logging.OrNop(logger)
	repo := airport.NewRepository(gdb)

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count airports: %w", err)
	}
	if count > 0 {
		n, err := repo.FillSearchKeys(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Infow("filled airport search keys", "airports", n)
		}
		return nil
	}
	if _, err := Seed(ctx, gdb, bytes.NewReader(bundledAirports), logger); err != nil {
		return fmt.Errorf("seed bundled airports: %w", err)
	}
	return nil
}
