package plancheck

// Progress 已比较到的计划元素数
func (c *Checker) Progress(personID string) int {
	return c.cursor(personID)
}
