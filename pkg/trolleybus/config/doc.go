/*
Package config provides type-safe configuration extraction from
map[string]any.

# Overview

config wraps a map[string]any and provides typed accessor methods that
handle missing keys and type mismatches gracefully by returning default
values. The bus package uses it to turn YAML or JSON files into bus
options without verbose type assertions:

	cfg, err := config.FromFile("bus.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	bus := trolleybus.New(trolleybus.OptionsFromConfig(cfg)...)

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "name":             "payments",
	    "default_priority": 10,
	    "metrics":          true,
	})

	name := cfg.String("name", "trolleybus")        // "payments"
	prio := cfg.Int("default_priority", 50)         // 10
	metrics := cfg.Bool("metrics", false)           // true
	missing := cfg.String("missing", "default")     // "default"

All accessors return the default value if the key is missing, the value
has the wrong type, or a numeric conversion would lose precision.
*/
package config
