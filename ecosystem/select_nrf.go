//go:build nrf

package ecosystem

func init() { register(NRF) }
