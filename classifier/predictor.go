package classifier

import (
	"fmt"
	"sort"
)

// DefaultTopK is how many ranked crops a prediction returns.
const DefaultTopK = 3

// Prediction is one ranked crop with its vote share in [0, 1].
type Prediction struct {
	Crop       string
	Confidence float64
}

// Predictor serves ranked crop predictions from a trained model and its
// label encoder.
type Predictor struct {
	model *Model
	enc   *LabelEncoder
}

// NewPredictor pairs a model with its encoder, rejecting artifacts that do
// not belong together.
func NewPredictor(m *Model, enc *LabelEncoder) (*Predictor, error) {
	if m.Forest.Classes != enc.Len() {
		return nil, fmt.Errorf("%w: model has %d classes, encoder %d",
			ErrCorruptArtifacts, m.Forest.Classes, enc.Len())
	}
	return &Predictor{model: m, enc: enc}, nil
}

// LoadPredictor reads both artifacts and pairs them.
func LoadPredictor(modelPath, encoderPath string) (*Predictor, error) {
	m, err := LoadModelFile(modelPath)
	if err != nil {
		return nil, err
	}
	enc, err := LoadEncoderFile(encoderPath)
	if err != nil {
		return nil, err
	}
	return NewPredictor(m, enc)
}

// Columns returns the feature columns the model expects, in input order.
func (p *Predictor) Columns() []string {
	return p.model.Columns
}

// Predict ranks the top crops for a sample keyed by column name. Samples
// may carry extra columns; the model picks out the ones it was trained on.
func (p *Predictor) Predict(sample map[string]float64) ([]Prediction, error) {
	return p.TopK(sample, DefaultTopK)
}

// TopK ranks the k most confident crops for a sample, highest first. Equal
// vote shares rank the higher class code first.
func (p *Predictor) TopK(sample map[string]float64, k int) ([]Prediction, error) {
	vec := make([]float64, len(p.model.Columns))
	for i, col := range p.model.Columns {
		v, ok := sample[col]
		if !ok {
			return nil, fmt.Errorf("sample is missing feature %q", col)
		}
		vec[i] = v
	}

	votes := p.model.Forest.Vote(vec)
	if len(votes) != p.enc.Len() {
		return nil, fmt.Errorf("%w: forest voted over %d classes, encoder has %d",
			ErrCorruptArtifacts, len(votes), p.enc.Len())
	}

	order := make([]int, len(votes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if votes[order[a]] != votes[order[b]] {
			return votes[order[a]] > votes[order[b]]
		}
		return order[a] > order[b]
	})

	if k <= 0 {
		k = DefaultTopK
	}
	if k > len(order) {
		k = len(order)
	}
	out := make([]Prediction, 0, k)
	for _, code := range order[:k] {
		crop, err := p.enc.Decode(code)
		if err != nil {
			return nil, err
		}
		out = append(out, Prediction{Crop: crop, Confidence: votes[code]})
	}
	return out, nil
}
