package board

type (
	PA2        struct{}
	PA3        struct{}
	PA4        struct{}
	PA11       struct{}
	PA12       struct{}
	TIM2       struct{}
	USB_OTG_FS struct{}
	I2S        struct{}
)

// Peri stands in for an ecosystem ownership handle.
type Peri[T any] struct{ p T }

type Peripherals struct {
	PA2        Peri[PA2]
	PA3        Peri[PA3]
	PA4        Peri[PA4]
	PA11       Peri[PA11]
	PA12       Peri[PA12]
	TIM2       Peri[TIM2]
	USB_OTG_FS Peri[USB_OTG_FS]
	I2S        Peri[I2S]
}
