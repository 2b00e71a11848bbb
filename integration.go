// integration.go: Command-line overlay for loaded configuration
//
// Combines flash-flags command-line parsing with the document pipeline:
// flags registered here overlay the merged document bag before schema
// resolution, so operators can override individual fields without editing
// the configuration file. Only flags explicitly present on the command line
// participate in the overlay; defaults never mask file values.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"fmt"
	"strings"
	"time"

	flashflags "github.com/agilira/flash-flags"
)

// FlagOverlay manages command-line flags that override configuration fields.
// Flag names use dashes ("server-port"); the corresponding field key is the
// dash-to-dot conversion ("server.port"), with a single-segment name mapping
// to a top-level key.
type FlagOverlay struct {
	flags   *flashflags.FlagSet
	appName string
}

// NewFlagOverlay creates a flag overlay for the named application.
func NewFlagOverlay(appName string) *FlagOverlay {
	return &FlagOverlay{
		flags:   flashflags.New(appName),
		appName: appName,
	}
}

// SetDescription sets the application description for help text.
func (fo *FlagOverlay) SetDescription(description string) *FlagOverlay {
	fo.flags.SetDescription(description)
	return fo
}

// SetVersion sets the application version for help text.
func (fo *FlagOverlay) SetVersion(version string) *FlagOverlay {
	fo.flags.SetVersion(version)
	return fo
}

// StringFlag registers a string override flag.
func (fo *FlagOverlay) StringFlag(name, defaultValue, usage string) *FlagOverlay {
	fo.flags.String(name, defaultValue, usage)
	return fo
}

// IntFlag registers an integer override flag.
func (fo *FlagOverlay) IntFlag(name string, defaultValue int, usage string) *FlagOverlay {
	fo.flags.Int(name, defaultValue, usage)
	return fo
}

// BoolFlag registers a boolean override flag.
func (fo *FlagOverlay) BoolFlag(name string, defaultValue bool, usage string) *FlagOverlay {
	fo.flags.Bool(name, defaultValue, usage)
	return fo
}

// DurationFlag registers a duration override flag.
func (fo *FlagOverlay) DurationFlag(name string, defaultValue time.Duration, usage string) *FlagOverlay {
	fo.flags.Duration(name, defaultValue, usage)
	return fo
}

// Float64Flag registers a float64 override flag.
func (fo *FlagOverlay) Float64Flag(name string, defaultValue float64, usage string) *FlagOverlay {
	fo.flags.Float64(name, defaultValue, usage)
	return fo
}

// Parse parses command-line arguments. Environment variables with the
// uppercased app-name prefix (APPNAME_SERVER_PORT for --server-port) are
// also consulted by flash-flags.
func (fo *FlagOverlay) Parse(args []string) error {
	fo.flags.SetEnvPrefix(strings.ToUpper(fo.appName))
	if err := fo.flags.Parse(args); err != nil {
		return fmt.Errorf("failed to parse command-line flags: %w", err)
	}
	return nil
}

// Changed reports whether the named flag was explicitly provided.
func (fo *FlagOverlay) Changed(name string) bool {
	flag := fo.flags.Lookup(name)
	return flag != nil && flag.Changed()
}

// ApplyOverlay writes explicitly-set flag values into bag, keyed by the
// dash-to-dot conversion of each flag name. The bag is modified in place
// and returned for chaining.
func (fo *FlagOverlay) ApplyOverlay(bag map[string]any) map[string]any {
	if bag == nil {
		bag = make(map[string]any)
	}
	fo.flags.VisitAll(func(flag *flashflags.Flag) {
		if !flag.Changed() {
			return
		}
		setNestedValue(bag, fo.flagNameToFieldKey(flag.Name()), flag.Value())
	})
	return bag
}

// PrintUsage prints the flag help text.
func (fo *FlagOverlay) PrintUsage() {
	fo.flags.PrintHelp()
}

// flagNameToFieldKey converts "server-port" to "server.port".
func (fo *FlagOverlay) flagNameToFieldKey(flagName string) string {
	return strings.ReplaceAll(flagName, "-", ".")
}

// setNestedValue writes value at a dotted key path, creating intermediate
// maps as needed. A non-map intermediate is replaced wholesale, matching
// override semantics elsewhere in the pipeline.
func setNestedValue(bag map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	current := bag
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
			return
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
}
