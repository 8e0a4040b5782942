// Package file implements the knowledge-base port over a local JSON document.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"smartfarm-assistant/internal/repository"
)

type topicRepository struct {
	path string
}

// NewTopicRepository reads grounding facts from a JSON file mapping category
// names to fact lines.
func NewTopicRepository(path string) repository.Topics {
	return &topicRepository{path: path}
}

func (r *topicRepository) Load(_ context.Context) (map[string][]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("topics: read %s: %w", r.path, err)
	}

	var topics map[string][]string
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil, fmt.Errorf("topics: parse %s: %w", r.path, err)
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("topics: %s has no categories", r.path)
	}
	return topics, nil
}
