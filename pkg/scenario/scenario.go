// Package scenario loads the scenario book: a YAML file mapping scenario
// names to the cost and rate parameters of the vacancy liability model.
//
//	scenarios:
//	  base:
//	    fire_response_cost: 1500
//	    ...
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/soskin/vacancy-shadow-liability/pkg/vsl"
)

// ErrUnknownScenario is returned when a requested name is not in the book.
var ErrUnknownScenario = errors.New("unknown scenario")

// Book holds the raw scenario mappings in file order.
type Book struct {
	names     []string
	scenarios map[string]map[string]any
}

// Load reads a scenario book from a YAML file.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}

	book, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario config %s: %w", path, err)
	}
	return book, nil
}

// Parse decodes a scenario book from YAML bytes.
func Parse(data []byte) (*Book, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("top level must be a mapping with a scenarios key")
	}

	var node *yaml.Node
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "scenarios" {
			node = root.Content[i+1]
			break
		}
	}
	if node == nil {
		return nil, errors.New("missing scenarios section")
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("scenarios must be a mapping (line %d)", node.Line)
	}

	book := &Book{scenarios: make(map[string]map[string]any)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if _, dup := book.scenarios[name]; dup {
			return nil, fmt.Errorf("scenario %q defined twice (line %d)", name, node.Content[i].Line)
		}

		raw := map[string]any{}
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
		book.names = append(book.names, name)
		book.scenarios[name] = raw
	}
	if len(book.names) == 0 {
		return nil, errors.New("scenarios section is empty")
	}
	return book, nil
}

// Names returns the scenario names in file order.
func (b *Book) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Raw returns a copy of the unresolved key/value mapping for name.
func (b *Book) Raw(name string) (map[string]any, error) {
	raw, ok := b.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s'. Valid options: %s",
			ErrUnknownScenario, name, strings.Join(b.names, ", "))
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out, nil
}

// Parameters resolves name into validated model parameters.
func (b *Book) Parameters(name string) (vsl.Parameters, error) {
	raw, err := b.Raw(name)
	if err != nil {
		return vsl.Parameters{}, err
	}
	return vsl.ParametersFromMap(name, raw)
}
