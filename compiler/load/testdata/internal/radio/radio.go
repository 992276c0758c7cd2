//go:build resgen

package radio

//resgen:group
type RadioResources struct {
	Spi SPI1
}
