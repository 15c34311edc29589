package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// LabelEncoder maps crop names to dense class codes. Codes are assigned in
// sorted name order, so the same label set always encodes the same way.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// FitLabels builds an encoder over the distinct labels in the slice.
func FitLabels(labels []string) *LabelEncoder {
	uniq := make(map[string]bool, len(labels))
	for _, l := range labels {
		uniq[l] = true
	}
	classes := make([]string, 0, len(uniq))
	for l := range uniq {
		classes = append(classes, l)
	}
	slices.Sort(classes)
	return newEncoder(classes)
}

func newEncoder(classes []string) *LabelEncoder {
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

// Classes returns the labels in code order.
func (e *LabelEncoder) Classes() []string {
	return slices.Clone(e.classes)
}

// Len returns the number of classes.
func (e *LabelEncoder) Len() int {
	return len(e.classes)
}

// Encode returns the class code for a label.
func (e *LabelEncoder) Encode(label string) (int, bool) {
	code, ok := e.index[label]
	return code, ok
}

// Decode returns the label for a class code.
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("class code %d out of range [0, %d)", code, len(e.classes))
	}
	return e.classes[code], nil
}

type encoderFile struct {
	Classes []string `json:"classes"`
}

// SaveFile writes the encoder as a JSON artifact.
func (e *LabelEncoder) SaveFile(path string) error {
	data, err := json.MarshalIndent(encoderFile{Classes: e.classes}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode label encoder: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write label encoder: %w", err)
	}
	return nil
}

// LoadEncoderFile reads an encoder artifact written by SaveFile.
func LoadEncoderFile(path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMissingModel, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read label encoder: %w", err)
	}
	var f encoderFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse label encoder: %w", err)
	}
	if len(f.Classes) == 0 {
		return nil, fmt.Errorf("label encoder %s has no classes", path)
	}
	return newEncoder(f.Classes), nil
}
