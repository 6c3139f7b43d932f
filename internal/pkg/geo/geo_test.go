package geo

import (
	"encoding/json"
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	jakarta := Coordinate{Lat: -6.2, Lon: 106.8}

	if d := DistanceKm(jakarta, jakarta); d != 0 {
		t.Errorf("DistanceKm(p, p) = %v, want 0", d)
	}

	east := Coordinate{Lat: -6.2, Lon: 106.9}
	d := DistanceKm(jakarta, east)
	// 0.1 degrees of longitude near the equator is roughly 11 km.
	if d < 10.9 || d > 11.2 {
		t.Errorf("DistanceKm = %v km, want ~11.06 km", d)
	}

	if back := DistanceKm(east, jakarta); math.Abs(back-d) > 1e-9 {
		t.Errorf("distance is not symmetric: %v vs %v", d, back)
	}
}

func TestCoordinateValidate(t *testing.T) {
	cases := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid", Coordinate{Lat: -6.2, Lon: 106.8}, false},
		{"boundary", Coordinate{Lat: 90, Lon: -180}, false},
		{"latitude too high", Coordinate{Lat: 91, Lon: 0}, true},
		{"latitude too low", Coordinate{Lat: -90.5, Lon: 0}, true},
		{"longitude too high", Coordinate{Lat: 0, Lon: 180.1}, true},
		{"longitude too low", Coordinate{Lat: 0, Lon: -181}, true},
	}
	for _, c := range cases {
		err := c.coord.Validate()
		if (err != nil) != c.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", c.name, err, c.wantErr)
		}
	}
}

func TestFenceContains(t *testing.T) {
	fence := Fence{
		Center:   Coordinate{Lat: -6.2, Lon: 106.8},
		RadiusKm: 1,
	}

	if !fence.Contains(fence.Center) {
		t.Error("center must be inside the fence")
	}
	// ~0.55 km north of center.
	if !fence.Contains(Coordinate{Lat: -6.195, Lon: 106.8}) {
		t.Error("point 0.55 km away must be inside a 1 km fence")
	}
	// ~11 km east of center.
	if fence.Contains(Coordinate{Lat: -6.2, Lon: 106.9}) {
		t.Error("point 11 km away must be outside a 1 km fence")
	}
}

func TestPointGeoJSON(t *testing.T) {
	p := NewPoint(Coordinate{Lat: -6.2, Lon: 106.8})

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"type":"Point","coordinates":[106.8,-6.2]}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Point
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Lat != -6.2 || back.Lon != 106.8 {
		t.Errorf("round trip = %+v, want lat=-6.2 lon=106.8", back.Coordinate)
	}
}

func TestPointUnmarshalRejectsOtherGeometries(t *testing.T) {
	var p Point
	err := json.Unmarshal([]byte(`{"type":"Polygon","coordinates":[1,2]}`), &p)
	if err == nil {
		t.Error("expected error for non-Point geometry")
	}
}
