package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofield/cropsense/dataset"
)

// separableDataset builds three crops whose feature clusters sit far
// apart, so any reasonable forest separates them.
func separableDataset(perClass int) *dataset.Dataset {
	d := dataset.New(append([]string{dataset.ColCrop}, dataset.TrainingColumns...))
	bases := []struct {
		crop string
		base float64
	}{
		{"Rice", 10},
		{"Wheat", 50},
		{"Cotton", 90},
	}
	for _, b := range bases {
		for i := 0; i < perClass; i++ {
			rec := dataset.Record{dataset.ColCrop: b.crop}
			for j, col := range dataset.TrainingColumns {
				rec.SetFloat(col, b.base+float64(j)+float64(i)*0.1, 2)
			}
			d.Append(rec)
		}
	}
	return d
}

func TestTrainOnSeparableCrops(t *testing.T) {
	d := separableDataset(20)

	res, err := Train(d, TrainOptions{Trees: 25})
	require.NoError(t, err)

	assert.Equal(t, 48, res.TrainRows)
	assert.Equal(t, 12, res.TestRows)
	assert.Equal(t, []string{"Cotton", "Rice", "Wheat"}, res.Encoder.Classes())
	assert.Equal(t, dataset.TrainingColumns, res.Model.Columns)
	assert.Equal(t, 25, res.Model.Trees)

	require.NotNil(t, res.Report)
	assert.GreaterOrEqual(t, res.Report.Accuracy, 0.9, "clusters this far apart should classify cleanly")

	support := 0
	for _, c := range res.Report.Classes {
		support += res.Report.PerClass[c].Support
	}
	assert.Equal(t, res.TestRows, support)
}

func TestTrainReportString(t *testing.T) {
	res, err := Train(separableDataset(10), TrainOptions{Trees: 10})
	require.NoError(t, err)

	out := res.Report.String()
	for _, want := range []string{"precision", "recall", "f1-score", "support", "accuracy", "macro avg", "weighted avg", "Rice", "Wheat", "Cotton"} {
		assert.Contains(t, out, want)
	}
}

func TestTrainMissingColumns(t *testing.T) {
	d := dataset.New([]string{dataset.ColCrop, dataset.ColN})
	d.Append(dataset.Record{dataset.ColCrop: "Rice", dataset.ColN: "60"})

	_, err := Train(d, TrainOptions{})
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), dataset.ColPH)
}

func TestTrainNoRows(t *testing.T) {
	d := dataset.New(append([]string{dataset.ColCrop}, dataset.TrainingColumns...))
	_, err := Train(d, TrainOptions{})
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestTrainBadCell(t *testing.T) {
	d := separableDataset(3)
	d.Records[1][dataset.ColN] = "not-a-number"

	_, err := Train(d, TrainOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestTrainEmptyLabel(t *testing.T) {
	d := separableDataset(3)
	d.Records[0][dataset.ColCrop] = "   "

	_, err := Train(d, TrainOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty crop label")
}

func TestTrainSingletonClass(t *testing.T) {
	d := separableDataset(5)
	rec := dataset.Record{dataset.ColCrop: "Jute"}
	for j, col := range dataset.TrainingColumns {
		rec.SetFloat(col, 30+float64(j), 2)
	}
	d.Append(rec)

	_, err := Train(d, TrainOptions{})
	assert.ErrorIs(t, err, ErrClassTooSmall)
}

func TestTrainOptionDefaults(t *testing.T) {
	o := TrainOptions{}.withDefaults()
	assert.Equal(t, DefaultTrees, o.Trees)
	assert.Equal(t, DefaultTestFraction, o.TestFraction)
	assert.Equal(t, int64(DefaultSeed), o.Seed)

	o = TrainOptions{Trees: 7, TestFraction: 0.5, Seed: 3}.withDefaults()
	assert.Equal(t, 7, o.Trees)
	assert.Equal(t, 0.5, o.TestFraction)
	assert.Equal(t, int64(3), o.Seed)
}

func TestArgmaxPrefersFirstOnTie(t *testing.T) {
	assert.Equal(t, 0, argmax([]float64{0.4, 0.4, 0.2}))
	assert.Equal(t, 2, argmax([]float64{0.1, 0.2, 0.7}))
}
