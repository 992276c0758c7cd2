//go:build resgen

package board

//resgen:group members=type
type ButtonResources struct {
	User PC13
	// wakeup capable
	//resgen:alias WakeupPin
	Wakeup PA0
}

//resgen:group no_aliases members=type
type FlashResources struct {
	Bus SPI1
}
