// Package discretize projects continuous allele-frequency densities onto
// discrete site frequency spectra.
//
// Given a density phi sampled on one grid per population, the entry
// (i1, ..., ir) of the resulting spectrum is the nested integral of
//
//	phi(p1, ..., pr) * prod_k C(nk, ik) * pk^ik * (1-pk)^(nk-ik)
//
// over the grid domain, evaluated with the trapezoidal rule along each axis.
// Grids may be non-uniform but must be strictly increasing within [0, 1] and
// hold at least two points. Variants exist for one, two and three
// populations; the nested-sweep pattern does not extend past rank three
// without a different contraction scheme, so no higher-rank variant is
// provided.
package discretize
