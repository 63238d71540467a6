package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"field-service/internal/dto"
	"field-service/internal/entities"
)

// loadSnapshot reads an order in the API's wire shape from a JSON or YAML file.
func loadSnapshot(path string) (*entities.Order, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return decodeSnapshot(data, filepath.Ext(path))
}

func decodeSnapshot(data []byte, ext string) (*entities.Order, []string, error) {
	var wire dto.OrderWireDTO
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &wire); err != nil {
			return nil, nil, fmt.Errorf("failed to decode YAML snapshot: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, nil, fmt.Errorf("failed to decode JSON snapshot: %w", err)
		}
	}
	order, warnings := dto.OrderFromWire(wire)
	return order, warnings, nil
}
