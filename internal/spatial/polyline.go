package spatial

// DecodePolyline decodes a Google Maps encoded polyline string into lat/lng
// pairs, following the algorithm described in
// https://developers.google.com/maps/documentation/utilities/polylinealgorithm
// An empty or truncated string yields the points decoded so far.
func DecodePolyline(encoded string) []LatLng {
	var points []LatLng
	var lat, lng int32

	index := 0
	for index < len(encoded) {
		dlat, next, ok := decodeVarint(encoded, index)
		if !ok {
			break
		}
		lat += dlat
		dlng, next2, ok := decodeVarint(encoded, next)
		if !ok {
			break
		}
		lng += dlng
		index = next2

		points = append(points, LatLng{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}
	return points
}

// decodeVarint reads one zigzag-encoded delta starting at index.
func decodeVarint(encoded string, index int) (int32, int, bool) {
	var result int32
	var shift uint
	for {
		if index >= len(encoded) {
			return 0, index, false
		}
		b := int32(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), index, true
	}
	return result >> 1, index, true
}
