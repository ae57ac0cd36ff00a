package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"task-tracker/internal/storage"
)

// document is the on-disk layout of the task file.
type document struct {
	NextID int64            `json:"next_id" yaml:"next_id"`
	Tasks  []storage.Record `json:"tasks" yaml:"tasks"`
}

// codec encodes and decodes the task file.
type codec interface {
	Name() string
	Encode(doc document) ([]byte, error)
	Decode(data []byte) (document, error)
}

// codecFor picks a codec from the file extension: .yaml and .yml use YAML,
// everything else JSON.
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Encode(doc document) ([]byte, error) {
	if doc.Tasks == nil {
		doc.Tasks = []storage.Record{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode accepts both the document layout and a bare array of records.
func (jsonCodec) Decode(data []byte) (document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return document{}, fmt.Errorf("empty task file")
	}

	if trimmed[0] == '[' {
		var records []storage.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return document{}, err
		}
		return document{Tasks: records}, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return document{}, err
	}
	return doc, nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Encode(doc document) ([]byte, error) {
	if doc.Tasks == nil {
		doc.Tasks = []storage.Record{}
	}
	return yaml.Marshal(doc)
}

// Decode accepts both the document layout and a bare sequence of records.
func (yamlCodec) Decode(data []byte) (document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return document{}, err
	}
	if len(root.Content) == 0 {
		return document{}, fmt.Errorf("empty task file")
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var records []storage.Record
		if err := node.Decode(&records); err != nil {
			return document{}, err
		}
		return document{Tasks: records}, nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return document{}, err
		}
		return doc, nil
	default:
		return document{}, fmt.Errorf("unexpected yaml node at line %d", node.Line)
	}
}
