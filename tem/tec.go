package tem

// TEC topologic elevation model cell
type TEC struct {
	Z  float64 // elevation [m]
	G  float64 // gradient toward the downslope cell [-]
	DS int     // downslope cell id; -1 at a local minimum
}
