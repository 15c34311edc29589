package classifier

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofield/cropsense/dataset"
)

func trainedResult(t *testing.T) *Result {
	t.Helper()
	res, err := Train(separableDataset(15), TrainOptions{Trees: 25})
	require.NoError(t, err)
	return res
}

func sampleNear(base float64) map[string]float64 {
	sample := make(map[string]float64, len(dataset.TrainingColumns))
	for j, col := range dataset.TrainingColumns {
		sample[col] = base + float64(j) + 0.5
	}
	return sample
}

func TestPredictRanksObviousSampleFirst(t *testing.T) {
	res := trainedResult(t)
	p, err := NewPredictor(res.Model, res.Encoder)
	require.NoError(t, err)

	preds, err := p.Predict(sampleNear(10))
	require.NoError(t, err)
	require.Len(t, preds, 3)

	assert.Equal(t, "Rice", preds[0].Crop)
	assert.Greater(t, preds[0].Confidence, 0.5)
	for i := 1; i < len(preds); i++ {
		assert.GreaterOrEqual(t, preds[i-1].Confidence, preds[i].Confidence, "ranking must be descending")
	}
	for _, pr := range preds {
		assert.GreaterOrEqual(t, pr.Confidence, 0.0)
		assert.LessOrEqual(t, pr.Confidence, 1.0)
	}
}

func TestPredictIgnoresExtraFeatures(t *testing.T) {
	res := trainedResult(t)
	p, err := NewPredictor(res.Model, res.Encoder)
	require.NoError(t, err)

	sample := sampleNear(90)
	sample[dataset.ColWindSpeed] = 3.2
	sample[dataset.ColSolarRadiation] = 200
	sample[dataset.ColEvapotranspiration] = 5.0

	preds, err := p.Predict(sample)
	require.NoError(t, err)
	assert.Equal(t, "Cotton", preds[0].Crop)
}

func TestPredictMissingFeature(t *testing.T) {
	res := trainedResult(t)
	p, err := NewPredictor(res.Model, res.Encoder)
	require.NoError(t, err)

	sample := sampleNear(10)
	delete(sample, dataset.ColPH)

	_, err = p.Predict(sample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dataset.ColPH)
}

func TestTopKClampsToClassCount(t *testing.T) {
	res := trainedResult(t)
	p, err := NewPredictor(res.Model, res.Encoder)
	require.NoError(t, err)

	preds, err := p.TopK(sampleNear(50), 10)
	require.NoError(t, err)
	assert.Len(t, preds, 3, "only three classes exist")

	preds, err = p.TopK(sampleNear(50), 1)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, "Wheat", preds[0].Crop)
}

func TestPredictorArtifactRoundTrip(t *testing.T) {
	res := trainedResult(t)
	dir := t.TempDir()
	modelPath := filepath.Join(dir, ModelFileName)
	encoderPath := filepath.Join(dir, EncoderFileName)

	require.NoError(t, res.Model.SaveFile(modelPath))
	require.NoError(t, res.Encoder.SaveFile(encoderPath))

	p, err := LoadPredictor(modelPath, encoderPath)
	require.NoError(t, err)
	assert.Equal(t, dataset.TrainingColumns, p.Columns())

	preds, err := p.Predict(sampleNear(10))
	require.NoError(t, err)
	assert.Equal(t, "Rice", preds[0].Crop)
}

func TestLoadPredictorMissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadPredictor(filepath.Join(dir, ModelFileName), filepath.Join(dir, EncoderFileName))
	assert.ErrorIs(t, err, ErrMissingModel)
}

func TestNewPredictorRejectsMismatchedEncoder(t *testing.T) {
	res := trainedResult(t)
	wrong := FitLabels([]string{"Rice", "Wheat"})

	_, err := NewPredictor(res.Model, wrong)
	assert.ErrorIs(t, err, ErrCorruptArtifacts)
}
