package transform

import (
	"fmt"
	"math"
)

// Matrix is a row-major 3×3 homogeneous transform.
type Matrix [9]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mul returns m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[3*i+j] += m[3*i+k] * o[3*k+j]
			}
		}
	}
	return r
}

// Apply maps the point (x, y) through m, dividing by the homogeneous
// coordinate.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	z := m[6]*x + m[7]*y + m[8]
	return (m[0]*x + m[1]*y + m[2]) / z, (m[3]*x + m[4]*y + m[5]) / z
}

// ToMatrix maps one parameter vector to its matrix form.
type ToMatrix func(params []float64) Matrix

// Model identifies a parametric motion model by its parameter count.
type Model int

// Supported models.
const (
	Translation Model = 2
	Euclidean   Model = 3
	Similarity  Model = 4
	Affine      Model = 6
	Homography  Model = 8
)

// String returns the lowercase model name.
func (m Model) String() string {
	switch m {
	case Translation:
		return "translation"
	case Euclidean:
		return "euclidean"
	case Similarity:
		return "similarity"
	case Affine:
		return "affine"
	case Homography:
		return "homography"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// ModelFor returns the model with nparams parameters.
func ModelFor(nparams int) (Model, error) {
	switch m := Model(nparams); m {
	case Translation, Euclidean, Similarity, Affine, Homography:
		return m, nil
	}
	return 0, fmt.Errorf("%w: %d parameters", ErrUnsupportedModel, nparams)
}

// ParseModel returns the model named s.
func ParseModel(s string) (Model, error) {
	for _, m := range []Model{Translation, Euclidean, Similarity, Affine, Homography} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedModel, s)
}

// ParamsToMatrix converts a parameter vector using the model implied by
// its length:
//
//	translation (tx, ty)
//	euclidean   (tx, ty, θ)
//	similarity  (tx, ty, a, b)          [1+a -b tx; b 1+a ty; 0 0 1]
//	affine      (tx, ty, a, b, c, d)    [1+a b tx; c 1+d ty; 0 0 1]
//	homography  (h0, ..., h7)           [1+h0 h1 h2; h3 1+h4 h5; h6 h7 1]
//
// It panics for any other length; use ModelFor to validate first.
func ParamsToMatrix(p []float64) Matrix {
	m := Identity()
	switch Model(len(p)) {
	case Translation:
		m[2], m[5] = p[0], p[1]
	case Euclidean:
		sin, cos := math.Sincos(p[2])
		m[0], m[1], m[2] = cos, -sin, p[0]
		m[3], m[4], m[5] = sin, cos, p[1]
	case Similarity:
		m[0], m[1], m[2] = 1+p[2], -p[3], p[0]
		m[3], m[4], m[5] = p[3], 1+p[2], p[1]
	case Affine:
		m[0], m[1], m[2] = 1+p[2], p[3], p[0]
		m[3], m[4], m[5] = p[4], 1+p[5], p[1]
	case Homography:
		m[0], m[1], m[2] = 1+p[0], p[1], p[2]
		m[3], m[4], m[5] = p[3], 1+p[4], p[5]
		m[6], m[7] = p[6], p[7]
	default:
		panic(fmt.Sprintf("transform: no model with %d parameters", len(p)))
	}
	return m
}
