// Package toscaadapter reads TOSCA template documents with gopkg.in/yaml.v3.
package toscaadapter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/ports"
)

// Parser implements ports.ToscaParser on top of yaml.v3.
//
// A document is accepted when it is a YAML mapping carrying a non-empty
// tosca_definitions_version. The metadata block and its fields are optional;
// scalar values there are stringified so numeric versions survive intact.
type Parser struct{}

func (Parser) Parse(content string) (ports.ToscaDocument, error) {
	var root map[string]any
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		return ports.ToscaDocument{}, fmt.Errorf("parse yaml: %w", err)
	}
	if root == nil {
		return ports.ToscaDocument{}, errors.New("document is not a yaml mapping")
	}

	definitions := scalarString(root["tosca_definitions_version"])
	if definitions == "" {
		return ports.ToscaDocument{}, errors.New("tosca_definitions_version is required")
	}

	doc := ports.ToscaDocument{ToscaDefinitionsVersion: definitions}
	if metadata, ok := root["metadata"].(map[string]any); ok {
		doc.Name = scalarString(metadata["template_name"])
		doc.Version = scalarString(metadata["template_version"])
		doc.TargetProviderType = scalarString(metadata["target_provider_type"])
	}
	return doc, nil
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
