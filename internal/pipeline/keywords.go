package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeywordsFile is the bulk ingestion config: which topics to fetch and how
// many articles each is worth.
type KeywordsFile struct {
	Keywords []Keyword `yaml:"keywords"`
}

type Keyword struct {
	Query string `yaml:"query"`
	Max   int    `yaml:"max,omitempty"`
}

func LoadKeywords(path string) ([]Keyword, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}

	var file KeywordsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse keywords file: %w", err)
	}

	if len(file.Keywords) == 0 {
		return nil, fmt.Errorf("keywords file %s lists no keywords", path)
	}

	for i, kw := range file.Keywords {
		if kw.Query == "" {
			return nil, fmt.Errorf("keyword %d has no query", i)
		}
	}

	return file.Keywords, nil
}
