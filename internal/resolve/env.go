package resolve

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/subosito/gotenv"
)

// DefaultsFileName is the name of the defaults file in the config directory.
const DefaultsFileName = "defaults.env"

// LoadDefaults reads a dotenv-style defaults file (KEY=VALUE lines, # comments).
// A missing file yields an empty map unless required is set.
func LoadDefaults(path string, required bool) (map[string]string, error) {
	env, err := gotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading defaults file %s: %w", path, err)
	}
	return env, nil
}
