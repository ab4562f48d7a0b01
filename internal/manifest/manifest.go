// Package manifest reads the package.json surface that drives
// configuration synthesis. Resolution never fails: a missing or broken
// manifest degrades to computed defaults with warnings.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// FileName is the manifest file resolved inside the working directory.
const FileName = "package.json"

// Resolve loads the manifest from cwd. On read failure it returns an
// empty manifest, and when the name field is absent it synthesizes one
// from the directory base name. Both conditions surface as warnings.
func Resolve(cwd string) (*core.PackageManifest, []string) {
	var warnings []string

	pkg, err := Read(filepath.Join(cwd, FileName))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("no valid package.json found in %s", cwd))
		pkg = &core.PackageManifest{}
	}

	if pkg.Name == "" {
		pkg.Name = filepath.Base(cwd)
		warnings = append(warnings, fmt.Sprintf("missing package.json %q field, assuming %q", "name", pkg.Name))
	}

	return pkg, warnings
}

// Read decodes one manifest file. The decode is deliberately loose:
// scalar fields accept the aliases package authors actually write, and a
// bare string "source" becomes a one-element list.
func Read(path string) (*core.PackageManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrManifestInvalid, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrManifestInvalid, err)
	}

	var pkg core.PackageManifest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &pkg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrManifestInvalid, err)
	}
	return &pkg, nil
}
