package geo

import (
	"encoding/json"
	"fmt"
	"math"
)

// Coordinate is a WGS84 point in decimal degrees. Latitude comes first
// everywhere inside the service; the GeoJSON [longitude, latitude] wire
// order exists only in Point.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate checks that the coordinate is a real latitude/longitude pair.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

const earthRadiusKm = 6371

// DistanceKm returns the Haversine great-circle distance between two
// coordinates in kilometers.
func DistanceKm(a, b Coordinate) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLon := deg2rad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// Fence is a circular geofence around a center coordinate.
type Fence struct {
	Center   Coordinate
	RadiusKm float64
}

// Contains reports whether c falls inside the fence. Points exactly on
// the boundary are admitted.
func (f Fence) Contains(c Coordinate) bool {
	return DistanceKm(f.Center, c) <= f.RadiusKm
}

// Point is a GeoJSON Point. This type is the single place in the module
// where the [longitude, latitude] order is produced or consumed; every
// other layer works with Coordinate.
type Point struct {
	Coordinate
}

func NewPoint(c Coordinate) Point {
	return Point{Coordinate: c}
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSONPoint{
		Type:        "Point",
		Coordinates: [2]float64{p.Lon, p.Lat},
	})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var raw geoJSONPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != "Point" {
		return fmt.Errorf("unsupported GeoJSON geometry type: %q", raw.Type)
	}
	p.Lon = raw.Coordinates[0]
	p.Lat = raw.Coordinates[1]
	return nil
}
