//go:build rp2

package ecosystem

func init() { register(RP2) }
