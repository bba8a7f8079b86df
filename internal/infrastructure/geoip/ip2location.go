// Package geoip resolves coordinates from a local IP2Location database,
// as an offline alternative to the HTTP geolocation service.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ip2location/ip2location-go/v9"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

var ErrOpenDB = errors.New("cannot open ip2location database")

// record is the subset of an IP2Location lookup the resolver needs.
type record struct {
	CountryShort string
	Latitude     float32
	Longitude    float32
}

type lookupFunc func(ip string) (record, error)

// IP2Location implements ports.GeoResolver from a BIN database.
//
// This site or product includes IP2Location LITE data available from
// <a href="https://lite.ip2location.com">https://lite.ip2location.com</a>.
type IP2Location struct {
	lookup lookupFunc
	close  func()
}

// NewIP2Location opens the database at dbPath. The file stays open until Close.
func NewIP2Location(dbPath string) (*IP2Location, error) {
	db, err := ip2location.OpenDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenDB, err)
	}

	return &IP2Location{
		lookup: func(ip string) (record, error) {
			res, err := db.Get_all(ip)
			if err != nil {
				return record{}, err
			}
			return record{
				CountryShort: res.Country_short,
				Latitude:     res.Latitude,
				Longitude:    res.Longitude,
			}, nil
		},
		close: db.Close,
	}, nil
}

func (s *IP2Location) FetchCoordinates(ctx context.Context, ip domain.IPAddress) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}

	addr := net.ParseIP(string(ip))
	if addr == nil {
		return domain.Coordinates{}, &domain.UpstreamLogicalError{Step: domain.StepGeo, Message: "invalid query"}
	}

	res, err := s.lookup(addr.String())
	if err != nil {
		return domain.Coordinates{}, &domain.UpstreamLogicalError{Step: domain.StepGeo, Message: err.Error()}
	}
	// Unknown ranges come back as "-" with zero coordinates.
	if res.CountryShort == "" || res.CountryShort == "-" {
		return domain.Coordinates{}, &domain.UpstreamLogicalError{Step: domain.StepGeo, Message: "reserved range"}
	}

	return domain.Coordinates{
		Latitude:  float64(res.Latitude),
		Longitude: float64(res.Longitude),
	}, nil
}

// Close releases the database file.
func (s *IP2Location) Close() {
	if s.close != nil {
		s.close()
	}
}
