// Package transform reads and writes the per-frame registration
// transforms produced by motion estimation.
//
// A transform is a parameter vector of a fixed length nparams. Its
// canonical form is a row-major 3×3 matrix obtained through a ToMatrix
// mapping; ParamsToMatrix implements the usual parametric models
// (translation, euclidean, similarity, affine, homography).
//
// Two text formats exist and are kept distinct:
//
// The matrix format is what SaveMatrices writes: no header, one line
// per transform holding nine values with 15 decimals.
//
//	1.000000000000000 0.000000000000000 2.500000000000000 ...
//
// The legacy format is what LoadLegacy reads: a header line
// "nparams ntransforms width height" followed by ntransforms rows of
// nparams values.
//
//	6 2 640 480
//	0.5 -1.25 0 0 0 0
//	...
//
// Both formats can also be produced and parsed in the other direction
// (SaveLegacy, LoadMatrices). A missing file, a short file or a
// non-numeric token is always returned as an error; the output array is
// never left silently incomplete.
package transform
