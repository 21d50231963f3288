package facet

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reusemarket/storefront/internal/validation"
)

// Definition describes one filter group shown to shoppers: the metafield key
// it filters on and the values offered as checkboxes.
type Definition struct {
	Key     string   `yaml:"key" json:"key" validate:"required,max=64"`
	Label   string   `yaml:"label" json:"label" validate:"required"`
	Options []Option `yaml:"options" json:"options" validate:"unique=Value,dive"`
}

// Option is one selectable value of a Definition.
type Option struct {
	Value string `yaml:"value" json:"value" validate:"required"`
	Label string `yaml:"label" json:"label" validate:"required"`
}

// Definitions is the ordered set of filter groups.
type Definitions []Definition

type definitionsFile struct {
	Groups Definitions `yaml:"groups" validate:"required,min=1,unique=Key,dive"`
}

// Keys returns the metafield keys of all groups, in order.
func (d Definitions) Keys() []string {
	keys := make([]string, len(d))
	for i := range d {
		keys[i] = d[i].Key
	}
	return keys
}

// Lookup returns the group for key.
func (d Definitions) Lookup(key string) (Definition, bool) {
	for _, def := range d {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}

// DefaultDefinitions returns the groups the shop ships with.
func DefaultDefinitions() Definitions {
	return Definitions{
		{
			Key:   "is_used",
			Label: "商品種別",
			Options: []Option{
				{Value: "true", Label: "リユース品"},
				{Value: "false", Label: "新品"},
			},
		},
		{
			Key:   "condition",
			Label: "状態",
			Options: []Option{
				{Value: "new", Label: "新品同様"},
				{Value: "good", Label: "良好"},
				{Value: "fair", Label: "可"},
			},
		},
		{
			Key:   "has_accessories",
			Label: "付属品",
			Options: []Option{
				{Value: "true", Label: "あり"},
				{Value: "false", Label: "なし"},
			},
		},
		{
			Key:   "has_warranty",
			Label: "保証書",
			Options: []Option{
				{Value: "true", Label: "あり"},
				{Value: "false", Label: "なし"},
			},
		},
	}
}

// ParseDefinitions decodes and validates a YAML definitions document.
func ParseDefinitions(data []byte) (Definitions, error) {
	var file definitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse facet definitions: %w", err)
	}
	if err := validation.New().Validate(file); err != nil {
		return nil, fmt.Errorf("invalid facet definitions: %w", err)
	}
	return file.Groups, nil
}

// LoadDefinitions reads a YAML definitions file.
func LoadDefinitions(path string) (Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read facet definitions: %w", err)
	}
	return ParseDefinitions(data)
}
