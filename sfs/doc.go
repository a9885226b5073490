// Package sfs implements the site frequency spectrum data model.
//
// A [Spectrum] is a dense tensor with one axis per population. The entry at
// multi-index (i1, ..., ir) counts the genomic sites where population k
// carries ik copies of the derived allele out of nk sampled genomes, so each
// axis has length nk+1. Spectra of rank 1 through 3 are produced by the
// discretize package; the stats package consumes spectra of any rank.
//
// A spectrum optionally carries a companion boolean mask. Masked entries are
// excluded from every reduction, exactly as if they were removed from the
// array. The conventional use is [Spectrum.MaskCorners], which marks the
// all-ancestral and all-derived entries: those bins are not segregating
// sites and are unobservable in real data.
package sfs
