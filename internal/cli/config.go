package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/syssam/resgen/compiler/gen"
)

// ConfigFile is the project configuration read from the working directory
// when --config is not set. Its keys are the long flag names.
//
//	ecosystem: stm32
//	header: Code generated by resgen. DO NOT EDIT.
//	features: [extract/take]
//	patterns: [./board/...]
const ConfigFile = ".resgen.yaml"

// settings are the generator flags merged with the configuration file and
// RESGEN_* environment variables. Flags win over the environment, which wins
// over the file.
type settings struct {
	Dir       string
	Patterns  []string
	Ecosystem string
	Wrapper   string
	Scope     string
	Container string
	Header    string
	Target    string
	Cache     string
	Workers   int
	Features  []string
	Tags      []string
}

func addGeneratorFlags(fs *pflag.FlagSet) {
	fs.StringP("dir", "C", "", "directory patterns are resolved against")
	fs.StringP("ecosystem", "e", "", "ecosystem providing the wrapper and container (default: the one compiled in)")
	fs.String("wrapper", "", "ownership wrapper, e.g. example.com/hal.Handle")
	fs.String("scope", "", "default scope tag of a scoped wrapper")
	fs.String("container", "", "peripherals container type")
	fs.String("header", "", "header comment of generated files")
	fs.StringP("target", "o", "", "write every file to this directory instead of next to its definitions")
	fs.String("cache", "", "generation cache manifest, e.g. .resgen/cache")
	fs.IntP("workers", "j", 0, "number of files generated in parallel (default: GOMAXPROCS)")
	fs.StringSlice("features", nil, "features to enable: "+featureNames())
	fs.StringSlice("tags", nil, "additional build tags used when loading packages")
}

func featureNames() string {
	names := make([]string, len(gen.AllFeatures))
	for i, f := range gen.AllFeatures {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}

// loadSettings reads the configuration file and binds the flags of cmd.
func loadSettings(cmd *cobra.Command, v *viper.Viper) (*settings, error) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("resgen")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", "/", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	file := v.GetString("config")
	explicit := file != ""
	if !explicit {
		file = filepath.Join(v.GetString("dir"), ConfigFile)
	}
	v.SetConfigFile(file)
	switch err := v.ReadInConfig(); {
	case err == nil:
	case !explicit && errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", file, err)
	}

	return &settings{
		Dir:       v.GetString("dir"),
		Patterns:  v.GetStringSlice("patterns"),
		Ecosystem: v.GetString("ecosystem"),
		Wrapper:   v.GetString("wrapper"),
		Scope:     v.GetString("scope"),
		Container: v.GetString("container"),
		Header:    v.GetString("header"),
		Target:    v.GetString("target"),
		Cache:     v.GetString("cache"),
		Workers:   v.GetInt("workers"),
		Features:  v.GetStringSlice("features"),
		Tags:      v.GetStringSlice("tags"),
	}, nil
}

// genConfig turns the settings into a generator configuration.
func (s *settings) genConfig() (*gen.Config, error) {
	var opts []gen.Option
	if s.Ecosystem != "" {
		opts = append(opts, gen.WithEcosystem(s.Ecosystem))
	}
	if s.Wrapper != "" {
		opts = append(opts, gen.WithWrapper(s.Wrapper, s.Scope))
	} else if s.Scope != "" {
		return nil, gen.NewConfigError("Scope", s.Scope, "--scope requires --wrapper")
	}
	if s.Container != "" {
		opts = append(opts, gen.WithContainer(s.Container))
	}
	if s.Header != "" {
		opts = append(opts, gen.WithHeader(s.Header))
	}
	if s.Target != "" {
		opts = append(opts, gen.WithTarget(s.Target))
	}
	if s.Cache != "" {
		opts = append(opts, gen.WithCache(s.Cache))
	}
	if s.Workers != 0 {
		opts = append(opts, gen.WithWorkers(s.Workers))
	}
	if len(s.Features) > 0 {
		opts = append(opts, gen.WithFeatureNames(s.Features...))
	}
	if len(s.Tags) > 0 {
		opts = append(opts, gen.WithBuildFlags("-tags="+strings.Join(s.Tags, ",")))
	}
	return gen.NewConfig(opts...)
}

// patterns returns the command arguments, falling back to the configured
// patterns and then to the current package.
func (s *settings) patterns(args []string) []string {
	switch {
	case len(args) > 0:
		return args
	case len(s.Patterns) > 0:
		return s.Patterns
	default:
		return []string{"."}
	}
}
