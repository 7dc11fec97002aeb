// Package config loads world/engine configuration from a YAML file, the same
// two-stage viper-then-yaml approach the teacher's reinforcement config
// loader uses: viper resolves the file/path/type, then the decoded
// interface{} is re-marshaled and unmarshaled into a concrete struct so the
// rest of the program never touches viper directly.
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// outerDocument mirrors the teacher's OuterConfig: a kind discriminator plus
// an opaque "def" blob that gets re-marshaled into the concrete WorldConfig.
type outerDocument struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// WorldConfig is everything needed to construct an engine.World (spec §6
// "Configuration at world creation"), plus a few run-level knobs.
type WorldConfig struct {
	Width              int   `yaml:"width"`
	Height             int   `yaml:"height"`
	InitialColonyCount int   `yaml:"initialcolonycount"`
	Workers            int   `yaml:"workers"`
	Seed               int64 `yaml:"seed"`

	// TickInterval["duration"], when set, bounds how long the tick loop
	// runs: WithTickDeadline turns it into a context timeout. Individual
	// ticks are not paced; the core engine itself has no timing concept per
	// spec §5.
	TickInterval map[string]string `yaml:"tickinterval"`

	// The remaining fields retune dynamic-spawn/mutation pressure (spec
	// §4.7); zero values fall back to engine.Config's own defaults, so an
	// outer config file need only set the ones it wants to override.
	// Tags are lowercase because viper lowercases every key it reads.
	ForcedSpawnThreshold         int     `yaml:"forcedspawnthreshold"`
	SoftSpawnThreshold           int     `yaml:"softspawnthreshold"`
	DynamicSpawnBaseChance       float64 `yaml:"dynamicspawnbasechance"`
	DynamicSpawnEmptyRatioWeight float64 `yaml:"dynamicspawnemptyratioweight"`
	BaseMutationChance           float64 `yaml:"basemutationchance"`
	SpeciationThreshold          float64 `yaml:"speciationthreshold"`
	SpeciationMinSize            int32   `yaml:"speciationminsize"`
	SpeciationShare              float64 `yaml:"speciationshare"`
}

// WithTickDeadline returns a context bound by TickInterval["duration"], if
// set, mirroring the teacher's WithTrainingDeadline.
func (cfg *WorldConfig) WithTickDeadline(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if val, ok := cfg.TickInterval["duration"]; ok {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return nil, nil, fmt.Errorf("config: invalid tickInterval.duration %q: %w", val, err)
		}
		innerCtx, cancel := context.WithTimeout(ctx, duration)
		return innerCtx, cancel, nil
	}
	innerCtx, cancel := context.WithCancel(ctx)
	return innerCtx, cancel, nil
}

// FromYaml loads a WorldConfig from path, following the same
// viper-resolve-then-yaml-decode two-stage approach as the teacher's config
// loader: viper only locates and reads the file, the actual struct decoding
// goes through yaml.Unmarshal so struct tags stay plain `yaml:"..."`.
func FromYaml(path string) (*WorldConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	outer := &outerDocument{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, fmt.Errorf("config: decoding outer document: %w", err)
	}

	raw, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, fmt.Errorf("config: re-marshaling world config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: decoding world config: %w", err)
	}
	return cfg, nil
}

// Default returns sane baseline settings so a missing or partial config
// section doesn't leave zero-valued (and therefore invalid) dimensions.
func Default() *WorldConfig {
	return &WorldConfig{
		Width:              200,
		Height:             120,
		InitialColonyCount: 8,
		Workers:            4,
		Seed:               1,
	}
}
