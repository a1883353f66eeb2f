package occupancy

// Occupancy 车辆当前乘员数
func (c *Checker) Occupancy(vehicleID string) int {
	n, _ := c.occupancy.Get(vehicleID)
	return n
}
