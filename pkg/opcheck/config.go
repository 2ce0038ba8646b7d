// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opcheck

import (
	"os"
	"strconv"
	"strings"

	"github.com/gomlx/opcheck/pkg/core/cases"
	"github.com/gomlx/opcheck/pkg/core/data"
	"github.com/gomlx/opcheck/pkg/core/shapes"
	"github.com/gomlx/opcheck/pkg/support/sets"
	"github.com/pkg/errors"
)

// OPCHECK_CONFIG is the environment variable with the configuration of the tests.
//
// The format is a comma-separated list of "key=value" pairs:
//
//   - dim=<n>: dimension of the base shapes, see shapes.Unary. Defaults to shapes.DefaultDim.
//   - types=<name1>|<name2>|...: only test specializations whose data types are all listed.
//     Defaults to all registered types.
//
// Example: OPCHECK_CONFIG="dim=20,types=Dense|CSR".
const OPCHECK_CONFIG = "OPCHECK_CONFIG"

// DefaultConfig is the configuration used if OPCHECK_CONFIG is not set.
var DefaultConfig string

// Config of the tests.
type Config struct {
	Dim int

	// Types, if not empty, is the set of the names of the data types to test.
	Types sets.Set[string]
}

// LoadConfig returns the configuration from the environment variable OPCHECK_CONFIG if set,
// otherwise from DefaultConfig.
func LoadConfig() (Config, error) {
	if config, found := os.LookupEnv(OPCHECK_CONFIG); found {
		return ParseConfig(config)
	}
	return ParseConfig(DefaultConfig)
}

// ParseConfig parses a configuration string, see OPCHECK_CONFIG for the format.
func ParseConfig(config string) (Config, error) {
	c := Config{Dim: shapes.DefaultDim}
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return c, errors.Errorf("invalid configuration %q: %q is not in the format key=value", config, part)
		}
		switch key {
		case "dim":
			dim, err := strconv.Atoi(value)
			if err != nil {
				return c, errors.Wrapf(err, "invalid configuration %q: dim=%q", config, value)
			}
			if dim <= 0 {
				return c, errors.Errorf("invalid configuration %q: dim must be > 0", config)
			}
			c.Dim = dim
		case "types":
			c.Types = sets.MakeWith[string]()
			for _, name := range strings.Split(value, "|") {
				if _, err := data.ByName(name); err != nil {
					return c, errors.WithMessagef(err, "invalid configuration %q", config)
				}
				c.Types.Insert(name)
			}
		default:
			return c, errors.Errorf("invalid configuration %q: unknown key %q", config, key)
		}
	}
	return c, nil
}

// Enabled returns whether the type t is enabled by the configuration. Scalar types are always enabled.
func (c Config) Enabled(t *data.Type) bool {
	if t == nil || !t.IsData() || len(c.Types) == 0 {
		return true
	}
	return c.Types.Has(t.Name())
}

// Apply returns the unit with only the specializations whose types are all enabled.
func (c Config) Apply(unit *Unit) *Unit {
	return unit.Filter(func(spec cases.Specialization) bool {
		if !c.Enabled(spec.Out) {
			return false
		}
		for _, t := range spec.Types {
			if !c.Enabled(t) {
				return false
			}
		}
		return true
	})
}
