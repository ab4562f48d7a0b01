package bundler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// esVersions maps ECMAScript level descriptors to engine targets.
var esVersions = map[string]api.Target{
	"es5":       api.ES5,
	"es6":       api.ES2015,
	"es2015":    api.ES2015,
	"es2016":    api.ES2016,
	"es2017":    api.ES2017,
	"es2018":    api.ES2018,
	"es2019":    api.ES2019,
	"es2020":    api.ES2020,
	"es2021":    api.ES2021,
	"es2022":    api.ES2022,
	"es2023":    api.ES2023,
	"es2024":    api.ES2024,
	"esnext":    api.ESNext,
	"esmodules": api.ES2017,
}

// engineNames maps runtime descriptors to engine identifiers.
var engineNames = map[string]api.EngineName{
	"node":    api.EngineNode,
	"chrome":  api.EngineChrome,
	"firefox": api.EngineFirefox,
	"safari":  api.EngineSafari,
	"edge":    api.EngineEdge,
	"ios":     api.EngineIOS,
	"opera":   api.EngineOpera,
	"deno":    api.EngineDeno,
	"ie":      api.EngineIE,
}

var engineDescriptor = regexp.MustCompile(`^([a-z]+)([\d.]+)$`)

// parseTarget turns a target environment descriptor into engine
// settings. The descriptor is a comma-separated mix of ECMAScript levels
// ("es2017") and runtime versions ("node12"); empty means the engine
// default.
func parseTarget(target string) (api.Target, []api.Engine, error) {
	esTarget := api.DefaultTarget
	var engines []api.Engine

	for _, part := range strings.Split(target, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if t, ok := esVersions[part]; ok {
			esTarget = t
			continue
		}
		m := engineDescriptor.FindStringSubmatch(part)
		if m == nil {
			return 0, nil, fmt.Errorf("unrecognized target %q", part)
		}
		name, ok := engineNames[m[1]]
		if !ok {
			return 0, nil, fmt.Errorf("unrecognized target runtime %q", m[1])
		}
		engines = append(engines, api.Engine{Name: name, Version: m[2]})
	}
	return esTarget, engines, nil
}
