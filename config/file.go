package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/hashicorp/go-multierror"
)

// LoadFile reads a YAML or JSON file and applies its values to the user
// defined config. Nested objects are joined into option keys with "/", so
//
//	text:
//	  encoding:
//	    name: UTF-16
//
// sets the option "text/encoding/name". All values are applied that can be;
// problems are returned together.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	return Load(data)
}

// Load applies the values of a YAML or JSON document to the user defined config.
func Load(data []byte) error {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: failed to parse: %w", err)
	}

	values := make(map[string]interface{})
	flatten("", doc, values)

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result *multierror.Error
	for _, key := range keys {
		if err := SetConfigOption(key, values[key]); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", key, err))
		}
	}
	return result.ErrorOrNil()
}

func flatten(prefix string, doc map[string]interface{}, values map[string]interface{}) {
	for key, value := range doc {
		if prefix != "" {
			key = prefix + "/" + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flatten(key, nested, values)
			continue
		}
		values[key] = value
	}
}
