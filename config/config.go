package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/relay/client"
	"github.com/kbukum/relay/logger"
	"github.com/kbukum/relay/request"
)

// UnitConfig declares one middleware or adapter unit by name, with its
// opaque options value.
type UnitConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Options any    `mapstructure:"options"`
}

// VerbsConfig selects the verb surface.
type VerbsConfig struct {
	Only   []string `mapstructure:"only" validate:"dive,oneof=get head options trace delete post put patch"`
	Except []string `mapstructure:"except" validate:"dive,oneof=get head options trace delete post put patch"`
}

// Definition is one declarative client definition.
type Definition struct {
	Name       string        `mapstructure:"name" validate:"required"`
	Middleware []UnitConfig  `mapstructure:"middleware" validate:"dive"`
	Adapter    *UnitConfig   `mapstructure:"adapter"`
	Verbs      VerbsConfig   `mapstructure:"verbs"`
	Logging    logger.Config `mapstructure:"logging"`
}

// Validate checks the definition's structural constraints.
func (d *Definition) Validate() error {
	if err := validator.New().Struct(d); err != nil {
		return fmt.Errorf("config: invalid definition: %w", err)
	}
	d.Logging.ApplyDefaults()
	if err := d.Logging.Validate(); err != nil {
		return fmt.Errorf("config: invalid definition: %w", err)
	}
	return nil
}

// SurfaceConfig converts the verb selection into a client.Config.
func (d *Definition) SurfaceConfig() client.Config {
	return client.Config{
		Only:   toMethods(d.Verbs.Only),
		Except: toMethods(d.Verbs.Except),
	}
}

func toMethods(names []string) []request.Method {
	if len(names) == 0 {
		return nil
	}
	out := make([]request.Method, 0, len(names))
	for _, n := range names {
		out = append(out, request.Method(n))
	}
	return out
}

// Load reads a definition from the given file. A .env file next to the
// working directory is loaded first when present, and RELAY_* environment
// variables override file values.
func Load(path string) (*Definition, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("RELAY")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var def Definition
	if err := v.Unmarshal(&def); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	for i := range def.Middleware {
		def.Middleware[i].Options = normalizeOptions(def.Middleware[i].Options)
	}
	if def.Adapter != nil {
		def.Adapter.Options = normalizeOptions(def.Adapter.Options)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// normalizeOptions converts a list of name/value mappings into an ordered
// pair sequence. Scalars and plain mappings pass through unchanged; a
// mapping used where pairs are required is the compiler's to reject.
func normalizeOptions(opts any) any {
	list, ok := opts.([]any)
	if !ok || len(list) == 0 {
		return opts
	}
	pairs := make(request.Pairs, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return opts
		}
		name, nameOK := m["name"].(string)
		value, valueOK := m["value"].(string)
		if !nameOK || !valueOK || len(m) != 2 {
			return opts
		}
		pairs = append(pairs, request.Pair{Name: name, Value: value})
	}
	return pairs
}
