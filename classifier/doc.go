// Package classifier trains and serves the crop recommendation model: a
// random forest over nine soil and climate features. Training produces two
// artifacts, the forest itself and the label encoder that maps crop names
// to class codes; the Predictor loads both and ranks crops by vote share
// for a feature sample.
package classifier
