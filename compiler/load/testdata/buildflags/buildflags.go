//go:build resgen && !hidegroups

package buildflags

//resgen:group
type SensorResources struct {
	Adc ADC1
}
