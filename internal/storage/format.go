package storage

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

// tomlParser implements koanf.Parser over BurntSushi/toml.
type tomlParser struct{}

// TOML returns a koanf parser for TOML documents.
func TOML() koanf.Parser {
	return tomlParser{}
}

func (tomlParser) Unmarshal(b []byte) (map[string]any, error) {
	out := make(map[string]any)
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(m map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(dropNil(m)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// dropNil removes nil values, which TOML cannot represent.
func dropNil(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			continue
		case map[string]any:
			out[k] = dropNil(val)
		case []any:
			list := make([]any, 0, len(val))
			for _, item := range val {
				if item == nil {
					continue
				}
				if sub, ok := item.(map[string]any); ok {
					item = dropNil(sub)
				}
				list = append(list, item)
			}
			out[k] = list
		default:
			out[k] = v
		}
	}
	return out
}

// parserFor picks the tier format by file extension: .yaml and .yml are
// YAML, anything else is TOML.
func parserFor(file string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return TOML()
	}
}
