package classifier

import (
	"encoding/gob"
	"fmt"
	"os"

	randomforest "github.com/malaschitz/randomForest"
)

// Default artifact file names, relative to the models directory.
const (
	ModelFileName   = "crop_model.gob"
	EncoderFileName = "label_encoder.json"
)

// Model is the persisted form of a trained forest: the forest plus the
// feature column order its inputs must follow.
type Model struct {
	Columns []string
	Trees   int
	Forest  randomforest.Forest
}

// SaveFile writes the model as a gob artifact.
func (m *Model) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	return nil
}

// LoadModelFile reads a model artifact written by SaveFile.
func LoadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMissingModel, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", path, err)
	}
	if len(m.Columns) == 0 {
		return nil, fmt.Errorf("model %s lists no feature columns", path)
	}
	return &m, nil
}
