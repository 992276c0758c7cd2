// testgen renders a few resource groups with the Jennifer generator and
// prints the result.
// Run: go run ./compiler/gen/cmd/testgen [-ecosystem stm32]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/syssam/resgen/compiler/gen"
	"github.com/syssam/resgen/compiler/load"
)

func main() {
	eco := flag.String("ecosystem", "rp2", "ecosystem to generate for")
	flag.Parse()

	outDir, err := os.MkdirTemp("", "resgen-testgen-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	pin := func(name string) *load.TypeRef { return &load.TypeRef{Name: name} }
	groups := []*load.Group{
		{
			Name:       "LedResources",
			Visibility: load.Public,
			Members:    load.MemberByType,
			Package:    "board",
			Dir:        outDir,
			Fields: []*load.Field{
				{Name: "R", Type: pin("PA2")},
				{Name: "G", Type: pin("PA3")},
				{Name: "B", Type: pin("PA4")},
				{Name: "Tim2", Type: pin("TIM2"), Attributes: []string{"// shared with the PWM block", "//resgen:alias PWMTimer"}},
			},
		},
		{
			Name:            "UsbResources",
			Visibility:      load.Public,
			GenerateAliases: true,
			Members:         load.MemberByType,
			Package:         "board",
			Dir:             outDir,
			Fields: []*load.Field{
				{Name: "dp", Type: pin("PA12")},
				{Name: "dm", Type: pin("PA11")},
				{Name: "usb", Type: pin("USB_OTG_FS")},
			},
		},
	}

	config, err := gen.NewConfig(
		gen.WithEcosystem(*eco),
		gen.WithFeatures(gen.FeatureSnapshot),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
		os.Exit(1)
	}

	graph, err := gen.NewGraph(config, groups...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create graph: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating code with Jennifer (%s ecosystem)...\n", *eco)
	generator := gen.NewJenniferGenerator(graph)
	if err = generator.Generate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}
	m := generator.Metrics()
	fmt.Printf("%d files, %d bytes\n", m.FilesGenerated, m.TotalBytes)

	for _, grp := range graph.Groups {
		path := filepath.Join(outDir, grp.File())
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
			continue
		}
		fmt.Printf("\n--- %s ---\n%s", grp.File(), content)
	}
	fmt.Println("Done!")
}
