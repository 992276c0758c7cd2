//go:build resgen

package board

//resgen:group members=type
type UsbResources struct {
	Dp  PA12
	Dm  PA11
	Usb USB_OTG_FS
}

//resgen:group no_aliases members=type
type LedResources struct {
	R PA2
	G PA3
	B PA4
	// shared with the PWM block
	//resgen:alias PWMTimer
	Tim2 TIM2
}
