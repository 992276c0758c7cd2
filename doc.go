// Package resgen holds the runtime types used by code generated with the
// resgen compiler, and the error taxonomy shared by the compiler stages.
//
// A resource group is a struct that names the hardware peripherals one
// subsystem needs:
//
//	//go:build resgen
//
//	package board
//
//	//resgen:group no_aliases
//	type LedResources struct {
//		R PA2
//		G PA3
//		B PA4
//		// keep tim2 next to the PWM block
//		//resgen:alias PWMTimer
//		Tim2 TIM2
//	}
//
// Running the generator produces, next to the definition:
//
//	type PWMTimer = TIM2
//
//	type LedResources struct {
//		R resgen.ScopedPeri[resgen.Static, PA2]
//		...
//	}
//
//	func ExtractLedResources(p *Peripherals) (r LedResources) {
//		r.R = p.R
//		...
//		return r
//	}
//
// The generator lives in the compiler packages; see compiler/gen for the
// emitted shapes and package ecosystem for wrapper selection.
package resgen
