package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLConfigLoader reads raw configuration from a YAML file whose keys
// follow the Config tags (service_name, webhook.secret, delivery.max_attempts
// and so on). A missing file yields an empty map when Optional is set.
type YAMLConfigLoader struct {
	Path     string
	Optional bool
}

func (l YAMLConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	path := strings.TrimSpace(l.Path)
	if path == "" {
		return nil, fmt.Errorf("core: yaml config path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if l.Optional && errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("core: read config %s: %w", path, err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("core: parse config %s: %w", path, err)
	}
	return values, nil
}
