package colormap

import "math"

// Reference constants of the HSLuv family (sRGB primaries, D65 white).
var m = [3][3]float64{
	{3.240969941904521, -1.537383177570093, -0.498610760293},
	{-0.96924363628087, 1.87596750150772, 0.041555057407175},
	{0.055630079696993, -0.20397695888897, 1.056971514242878},
}

const (
	refY    = 1.0
	refU    = 0.19783000664283
	refV    = 0.46831999493879
	kappa   = 903.2962962
	epsilon = 0.0088564516
)

// line is y = slope*x + intercept in the chroma plane.
type line struct {
	slope, intercept float64
}

// bounds returns the six lines delimiting the sRGB gamut at lightness l.
func bounds(l float64) [6]line {
	var out [6]line
	sub1 := math.Pow(l+16, 3) / 1560896
	sub2 := sub1
	if sub1 <= epsilon {
		sub2 = l / kappa
	}
	for c := 0; c < 3; c++ {
		m1, m2, m3 := m[c][0], m[c][1], m[c][2]
		for t := 0; t < 2; t++ {
			ft := float64(t)
			top1 := (284517*m1 - 94839*m3) * sub2
			top2 := (838422*m3+769860*m2+731718*m1)*l*sub2 - 769860*ft*l
			bottom := (632260*m3-126452*m2)*sub2 + 126452*ft
			out[c*2+t] = line{slope: top1 / bottom, intercept: top2 / bottom}
		}
	}
	return out
}

// maxSafeChroma is the largest chroma at lightness l that stays inside the
// gamut for every hue.
func maxSafeChroma(l float64) float64 {
	lowest := math.MaxFloat64
	for _, b := range bounds(l) {
		d := math.Abs(b.intercept) / math.Sqrt(b.slope*b.slope+1)
		lowest = math.Min(lowest, d)
	}
	return lowest
}

// HPLuvToRGB converts hue in degrees, saturation and lightness in [0,100] to
// gamma-encoded sRGB components, nominally in [0,1].
func HPLuvToRGB(h, s, l float64) (r, g, b float64) {
	return lchToRGB(hpluvToLch(h, s, l))
}

func hpluvToLch(h, s, l float64) (float64, float64, float64) {
	if l > 99.9999999 {
		return 100, 0, h
	}
	if l < 0.00000001 {
		return 0, 0, h
	}
	return l, maxSafeChroma(l) / 100 * s, h
}

func lchToRGB(l, c, h float64) (float64, float64, float64) {
	var u, v float64
	if c != 0 {
		hrad := h / 180 * math.Pi
		u = math.Cos(hrad) * c
		v = math.Sin(hrad) * c
	}
	x, y, z := luvToXYZ(l, u, v)
	return fromLinear(dot(m[0], x, y, z)), fromLinear(dot(m[1], x, y, z)), fromLinear(dot(m[2], x, y, z))
}

func luvToXYZ(l, u, v float64) (float64, float64, float64) {
	if l == 0 {
		return 0, 0, 0
	}
	varU := u/(13*l) + refU
	varV := v/(13*l) + refV
	y := lToY(l)
	x := 0 - (9*y*varU)/((varU-4)*varV-varU*varV)
	z := (9*y - 15*varV*y - varV*x) / (3 * varV)
	return x, y, z
}

func lToY(l float64) float64 {
	if l <= 8 {
		return refY * l / kappa
	}
	return refY * math.Pow((l+16)/116, 3)
}

func dot(row [3]float64, x, y, z float64) float64 {
	return row[0]*x + row[1]*y + row[2]*z
}

// fromLinear applies the sRGB transfer function.
func fromLinear(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}
