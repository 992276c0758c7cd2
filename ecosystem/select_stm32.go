//go:build stm32

package ecosystem

func init() { register(STM32) }
