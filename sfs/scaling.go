package sfs

// OptimalScaling returns the multiplicative factor c minimizing the summed
// squared difference between data and c*model, restricted to entries masked
// in neither spectrum. The closed-form optimum is sum(data)/sum(model) over
// that intersection. A zero model sum yields +/-Inf or NaN per ordinary
// floating-point division; no error is raised for it.
//
// Returns ErrShapeMismatch if the spectra differ in shape.
func OptimalScaling(model, data *Spectrum) (float64, error) {
	m, d, err := IntersectMasks(model, data)
	if err != nil {
		return 0, err
	}

	return d.Sum() / m.Sum(), nil
}

// OptimallyScaled returns a new spectrum holding model rescaled by the
// optimal factor against data. The model's own mask carries over; model and
// data are left untouched.
func OptimallyScaled(model, data *Spectrum) (*Spectrum, error) {
	c, err := OptimalScaling(model, data)
	if err != nil {
		return nil, err
	}

	return model.Scale(c), nil
}
