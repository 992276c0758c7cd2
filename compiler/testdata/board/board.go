package board

type (
	PA0  struct{}
	PC13 struct{}
	SPI1 struct{}
)

// Peri stands in for an ecosystem ownership handle.
type Peri[T any] struct{ p T }

type Peripherals struct {
	PA0  Peri[PA0]
	PC13 Peri[PC13]
	SPI1 Peri[SPI1]
}
