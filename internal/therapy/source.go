package therapy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileDocumentSource читает коллекцию документов из JSON-файла
// вида [{"title": ..., "content": ..., "summary": ...}, ...].
type FileDocumentSource struct {
	path string
}

func NewFileDocumentSource(path string) *FileDocumentSource {
	return &FileDocumentSource{path: path}
}

func (s *FileDocumentSource) Documents(ctx context.Context) ([]Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла документов %s: %w", s.path, err)
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла документов %s: %w", s.path, err)
	}

	return docs, nil
}
