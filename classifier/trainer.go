package classifier

import (
	"fmt"
	"slices"
	"strings"

	randomforest "github.com/malaschitz/randomForest"

	"github.com/agrofield/cropsense/dataset"
)

// Training defaults.
const (
	DefaultTrees        = 100
	DefaultTestFraction = 0.2
	DefaultSeed         = 42
)

// TrainOptions tune a training run. The zero value trains with the
// defaults.
type TrainOptions struct {
	Trees        int
	TestFraction float64
	Seed         int64
}

func (o TrainOptions) withDefaults() TrainOptions {
	if o.Trees <= 0 {
		o.Trees = DefaultTrees
	}
	if o.TestFraction <= 0 || o.TestFraction >= 1 {
		o.TestFraction = DefaultTestFraction
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// Result carries everything a training run produces.
type Result struct {
	Model     *Model
	Encoder   *LabelEncoder
	Report    *Report
	TrainRows int
	TestRows  int
}

// Train fits a random forest to the dataset's feature columns with the
// crop column as label. Rows are split stratified by crop before fitting;
// the returned report scores the held-out rows.
func Train(d *dataset.Dataset, opts TrainOptions) (*Result, error) {
	opts = opts.withDefaults()

	required := append([]string{dataset.ColCrop}, dataset.TrainingColumns...)
	if missing := d.MissingColumns(required); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	if d.Len() == 0 {
		return nil, ErrNoRows
	}

	features, labels, err := featureMatrix(d)
	if err != nil {
		return nil, err
	}

	trainIdx, testIdx, err := stratifiedSplit(labels, opts.TestFraction, opts.Seed)
	if err != nil {
		return nil, err
	}

	enc := FitLabels(labels)

	trainX := make([][]float64, 0, len(trainIdx))
	trainY := make([]int, 0, len(trainIdx))
	for _, i := range trainIdx {
		code, _ := enc.Encode(labels[i])
		trainX = append(trainX, features[i])
		trainY = append(trainY, code)
	}

	forest := randomforest.Forest{
		Data: randomforest.ForestData{X: trainX, Class: trainY},
	}
	forest.Train(opts.Trees)

	model := &Model{
		Columns: slices.Clone(dataset.TrainingColumns),
		Trees:   opts.Trees,
		Forest:  forest,
	}

	actual := make([]int, 0, len(testIdx))
	predicted := make([]int, 0, len(testIdx))
	for _, i := range testIdx {
		code, _ := enc.Encode(labels[i])
		actual = append(actual, code)
		predicted = append(predicted, argmax(model.Forest.Vote(features[i])))
	}

	return &Result{
		Model:     model,
		Encoder:   enc,
		Report:    buildReport(enc, actual, predicted),
		TrainRows: len(trainIdx),
		TestRows:  len(testIdx),
	}, nil
}

// featureMatrix extracts the training matrix and trimmed crop labels,
// row for row.
func featureMatrix(d *dataset.Dataset) ([][]float64, []string, error) {
	features := make([][]float64, 0, d.Len())
	labels := make([]string, 0, d.Len())
	for i, rec := range d.Records {
		vec := make([]float64, len(dataset.TrainingColumns))
		for j, col := range dataset.TrainingColumns {
			v, err := rec.Float(col)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			vec[j] = v
		}
		label := rec.Crop()
		if label == "" {
			return nil, nil, fmt.Errorf("row %d: empty crop label", i+1)
		}
		features = append(features, vec)
		labels = append(labels, label)
	}
	return features, labels, nil
}

// argmax returns the index of the largest vote; the first one on a tie.
func argmax(votes []float64) int {
	best := 0
	for i, v := range votes {
		if v > votes[best] {
			best = i
		}
	}
	return best
}
