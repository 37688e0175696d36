package geo

import "math"

const earthRadiusMeters = 6371000.0

// DistanceSQL is the same spherical distance as a Postgres expression over a
// row's latitude/longitude columns. Placeholders bind (lat, lng, lat);
// least() guards acos against rounding above 1.0.
const DistanceSQL = `6371000 * acos(least(1.0,
    cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?))
    + sin(radians(?)) * sin(radians(latitude))))`

// DistanceMeters is the haversine great-circle distance between two points.
// It matches the spherical distance Postgres computes in the vendor search
// query, so in-process checks and SQL ordering agree.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := radians(lat1)
	rLat2 := radians(lat2)
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
