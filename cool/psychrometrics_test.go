package cool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPVs(t *testing.T) {
	// 飽和水蒸気圧の代表値
	assert.InDelta(t, 611.213, get_p_vs(0.0), 0.01)
	assert.InDelta(t, 2339.249, get_p_vs(20.0), 0.01)
	assert.InDelta(t, 4247.029, get_p_vs(30.0), 0.01)

	// 氷面上の式
	assert.InDelta(t, 259.892, get_p_vs(-10.0), 0.01)
}

func TestW(t *testing.T) {
	assert.InDelta(t, 0.01496041, get_w(32.0, 0.5), 1.0e-7)
	assert.InDelta(t, 0.01049913, get_w(26.0, 0.5), 1.0e-7)

	// 飽和空気
	assert.InDelta(t, 0.00377480, get_w_sat(0.0), 1.0e-7)
	assert.InDelta(t, 0.00763160, get_w_sat(10.0), 1.0e-7)
}

func TestPhiRoundTrip(t *testing.T) {
	cases := []struct {
		theta float64
		phi   float64
	}{
		{32.0, 0.5},
		{26.0, 0.5},
		{20.0, 0.3},
		{10.0, 1.0},
		{-5.0, 0.8},
	}
	for _, c := range cases {
		w := get_w(c.theta, c.phi)
		assert.InDelta(t, c.phi, get_phi(c.theta, w), 1.0e-9)
	}
}

func TestDerWSat(t *testing.T) {
	assert.InDelta(t, 0.0005176559, get_der_w_sat(10.0), 1.0e-9)

	// 中央差分が割線勾配と整合すること
	d := get_der_w_sat(20.0)
	secant := (get_w_sat(20.001) - get_w_sat(19.999)) / 0.002
	assert.InDelta(t, secant, d, 1.0e-7)
}

func TestH(t *testing.T) {
	assert.Equal(t, 0.0, get_h(0.0, 0.0))
	assert.InDelta(t, 52894.46, get_h(26.0, 0.0105), 0.01)

	// 乾き空気のみの場合は顕熱のみ
	assert.InDelta(t, 1005.0*30.0, get_h(30.0, 0.0), 1.0e-9)
}
