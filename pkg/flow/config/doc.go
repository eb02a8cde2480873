/*
Package config provides typed access to worker parameters.

# Overview

Declarative plans pass parameters to worker factories as a map[string]any.
Params wraps that map and returns defaults for missing keys and type
mismatches, so factories can read values without type assertions:

	func lowpass(p config.Params) (flow.Worker, error) {
	    cutoff := p.Float("cutoff", 0.25)
	    taps := p.Int("taps", 31)
	    window := p.String("window", "hamming")
	    ...
	}

# Number Coercion

Each description format decodes numbers differently: JSON and HCL give
float64, TOML gives int64 and YAML gives int. Int, Float and FloatSlice
accept all of them. Int rejects floats with a fractional part.

# File Loading

Parameter sets that are shared between plans can live in their own file:

	params, err := config.FromFile("lab.toml")
	plan, err := builder.Build(d, reg, params.Raw())

# Thread Safety

Params is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
