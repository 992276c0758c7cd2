// Package gen resolves loaded resource group definitions and generates their
// Go code.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Definitions (//resgen:group structs, *.resgen.yaml)
//	        ↓
//	   load.Group (compiler/load)
//	        ↓
//	   Graph: attributes, aliases, wrapper, extractor resolved
//	        ↓
//	   JenniferGenerator
//	        ↓
//	   <group>_resgen.go next to each definition
//
// # Generated Output
//
// For every group the generator emits, in one file guarded by the
// "!resgen" build constraint:
//
//   - a type alias per field, named by its alias directive, or after the
//     field when the group generates default aliases
//   - the record, each field wrapped in the ecosystem's ownership handle
//   - the extractor, building the record from a peripherals container
//   - for restricted groups, an exported variable holding the extractor
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithEcosystem("stm32"),
//	    gen.WithFeatures(gen.FeatureTake),
//	    gen.WithCache(".resgen.cache"),
//	)
//
// Without WithEcosystem the ecosystem compiled in by build tags is used.
//
// # Error Handling
//
// Definition errors are reported with the error types of the root resgen
// package (InvalidInputError, MalformedAliasError, AliasCollisionError,
// EcosystemError). NewGraph joins the errors of all failing groups.
// Configuration and emission failures use ConfigError and GenerationError.
package gen
