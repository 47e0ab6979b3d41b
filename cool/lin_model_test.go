package cool

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 参照ケースのパラメータ（理想制御）
func reference_params() Parameters {
	return NewParameters(3.1, 1.0, 0.16, ControlIdeal(), ControlIdeal())
}

// 参照ケースの入力値
func reference_inputs() Inputs {
	return NewInputs(32.0, 0.5, 26.0, 0.5, 1.35, 675.0, 34000.0, 4000.0)
}

func TestCAVReferenceScenario(t *testing.T) {
	mdl := NewMxCcRhTzBl(reference_params(), reference_inputs())

	sol, err := mdl.CAV_wd(mdl.In)
	require.NoError(t, err)

	// 理想制御では室温・室内湿度が設定値に一致する
	assert.InDelta(t, 26.0, sol.S5.Theta, 1.0e-6)
	assert.InDelta(t, 0.5, sol.Phi5, 1.0e-6)

	// 各節点の空気状態
	assert.InDelta(t, 27.9355, sol.S1.Theta, 1.0e-3)
	assert.InDelta(t, 0.0119383, sol.S1.W, 1.0e-6)
	assert.InDelta(t, 9.3425, sol.S2.Theta, 1.0e-2)
	assert.InDelta(t, 0.0072979, sol.S2.W, 1.0e-5)
	assert.InDelta(t, 12.3174, sol.S3.Theta, 1.0e-2)
	assert.InDelta(t, 0.0080404, sol.S3.W, 1.0e-5)
	assert.InDelta(t, 11.1740, sol.S4.Theta, 1.0e-3)
	assert.InDelta(t, 0.0080404, sol.S4.W, 1.0e-5)

	// 操作量
	assert.InDelta(t, -78878.7, sol.QtCC, 10.0)
	assert.InDelta(t, -3562.3, sol.QsHC, 10.0)

	// 接触流出口は飽和曲線上にある（線形化の許容誤差内）
	assert.InDelta(t, get_w_sat(sol.S2.Theta), sol.S2.W, 1.0e-5)
}

func TestCAVDeterministic(t *testing.T) {
	mdl := NewMxCcRhTzBl(reference_params(), reference_inputs())

	sol1, err := mdl.CAV_wd(mdl.In)
	require.NoError(t, err)
	sol2, err := mdl.CAV_wd(mdl.In)
	require.NoError(t, err)

	// 同一入力に対する解はビット単位で一致する
	assert.Equal(t, sol1, sol2)
}

func TestIdealEqualsLargeGain(t *testing.T) {
	in := reference_inputs()

	ideal := NewMxCcRhTzBl(reference_params(), in)
	sol_i, err := ideal.CAV_wd(in)
	require.NoError(t, err)

	// 旧実装互換: ゲイン 1e10 の比例制御は理想制御を近似する
	legacy := NewMxCcRhTzBl(
		NewParameters(3.1, 1.0, 0.16, NewProportional(1.0e10), NewProportional(1.0e10)), in)
	sol_p, err := legacy.CAV_wd(in)
	require.NoError(t, err)

	// 大ゲインでも制御量はほぼ設定値に一致する
	assert.InDelta(t, 26.0, sol_p.S5.Theta, 1.0e-4)
	assert.InDelta(t, 0.5, sol_p.Phi5, 1.0e-4)

	assert.InDelta(t, sol_i.S5.Theta, sol_p.S5.Theta, 1.0e-2)
	assert.InDelta(t, sol_i.S5.W, sol_p.S5.W, 1.0e-5)
	assert.InDelta(t, sol_i.S4.Theta, sol_p.S4.Theta, 1.0e-2)
	assert.InDelta(t, sol_i.S2.Theta, sol_p.S2.Theta, 1.0e-2)
	assert.InEpsilon(t, sol_i.QtCC, sol_p.QtCC, 1.0e-3)
	assert.InEpsilon(t, sol_i.QsHC, sol_p.QsHC, 1.0e-2)
}

func TestProportionalTracking(t *testing.T) {
	in := reference_inputs()

	err_of := func(k float64) float64 {
		mdl := NewMxCcRhTzBl(
			NewParameters(3.1, 1.0, 0.16, NewProportional(k), NewProportional(k)), in)
		sol, err := mdl.CAV_wd(in)
		require.NoError(t, err)
		return math.Abs(sol.S5.Theta - in.Theta5Sp)
	}

	// ゲインを上げるほど制御量は設定値に近づく
	e4 := err_of(1.0e4)
	e6 := err_of(1.0e6)
	e8 := err_of(1.0e8)
	assert.Greater(t, e4, e6)
	assert.Greater(t, e6, e8)
	assert.InDelta(t, 0.0, e8, 1.0e-2)
}

func TestControllerOff(t *testing.T) {
	in := reference_inputs()
	mdl := NewMxCcRhTzBl(
		NewParameters(3.1, 1.0, 0.16, ControlOff(), ControlOff()), in)

	sol, err := mdl.CAV_wd(in)
	require.NoError(t, err)

	// 制御なしでは操作量はゼロ（開ループ）
	assert.InDelta(t, 0.0, sol.QtCC, 1.0e-9)
	assert.InDelta(t, 0.0, sol.QsHC, 1.0e-9)

	// 室は外気と負荷で決まる自然状態に落ち着く
	assert.InDelta(t, 35.8344, sol.S5.Theta, 1.0e-3)
	assert.InDelta(t, 0.0194447, sol.S5.W, 1.0e-6)
}

func TestEnergyBalance(t *testing.T) {
	in := reference_inputs()
	mdl := NewMxCcRhTzBl(reference_params(), in)

	sol, err := mdl.CAV_wd(in)
	require.NoError(t, err)

	// 各ブロックの収支残差
	for i, r := range get_residuals(sol, in) {
		assert.InDelta(t, 0.0, r, 1.0e-6, "residual %d", i)
	}

	// 系全体のエンタルピー収支
	// m_o (c Δtheta + l Δw) + QtCC + QsHC + QsTZ + QlTZ = 0
	c_a := get_c_a()
	l := get_l_wtr()
	balance := sol.MOut*(c_a*(sol.So.Theta-sol.S5.Theta)+l*(sol.So.W-sol.S5.W)) +
		sol.QtCC + sol.QsHC + sol.QsTZ + sol.QlTZ
	assert.InDelta(t, 0.0, balance, 1.0e-6)
}

func TestSolveLinConverges(t *testing.T) {
	// 線形化点の初期値に依らず同じ解に収束する
	in := reference_inputs()
	p := reference_params()

	sol_a, err := solve_lin(p, in, 0.0)
	require.NoError(t, err)
	sol_b, err := solve_lin(p, in, 25.0)
	require.NoError(t, err)

	assert.InDelta(t, sol_a.S2.Theta, sol_b.S2.Theta, 2.0e-2)
	assert.InDelta(t, sol_a.S5.Theta, sol_b.S5.Theta, 1.0e-6)
}

func TestSingularSystem(t *testing.T) {
	// 流量ゼロは退化した系になる（入力検査を通さず直接組み立てる）
	p := reference_params()
	p.M = 0.0
	p.MO = 0.0

	_, err := lin_model(p, reference_inputs(), 10.0)
	require.Error(t, err)

	var serr *SingularSystemError
	assert.True(t, errors.As(err, &serr))
}

func TestCheckInputs(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Parameters, *Inputs)
		field  string
	}{
		{"zero flow", func(p *Parameters, in *Inputs) { p.M = 0.0 }, "m"},
		{"negative flow", func(p *Parameters, in *Inputs) { p.M = -1.0 }, "m"},
		{"outdoor flow over supply", func(p *Parameters, in *Inputs) { p.MO = 5.0 }, "m_o"},
		{"beta one", func(p *Parameters, in *Inputs) { p.Beta = 1.0 }, "beta"},
		{"beta negative", func(p *Parameters, in *Inputs) { p.Beta = -0.1 }, "beta"},
		{"phi out of range", func(p *Parameters, in *Inputs) { in.PhiO = 1.5 }, "phi_o"},
		{"negative ua", func(p *Parameters, in *Inputs) { in.UA = -1.0 }, "ua"},
		{"negative gain", func(p *Parameters, in *Inputs) { p.CtrlTheta = NewProportional(-1.0) }, "ctrl_theta.gain"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := reference_params()
			in := reference_inputs()
			c.modify(&p, &in)

			err := check_inputs(p, in)
			require.Error(t, err)

			var ierr *InvalidInputError
			require.True(t, errors.As(err, &ierr))
			assert.Equal(t, c.field, ierr.Field)
		})
	}

	assert.NoError(t, check_inputs(reference_params(), reference_inputs()))
}

func TestCheckSolution(t *testing.T) {
	in := reference_inputs()
	mdl := NewMxCcRhTzBl(reference_params(), in)
	sol, err := mdl.CAV_wd(in)
	require.NoError(t, err)
	require.NoError(t, check_solution(sol))

	var ferr *InfeasibleStateError

	// バイパスファクタが範囲外
	bad := *sol
	bad.Beta = 1.2
	err = check_solution(&bad)
	require.Error(t, err)
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "beta", ferr.Quantity)
	assert.Equal(t, 1.2, ferr.Value)

	// 絶対湿度が負
	bad = *sol
	bad.S3.W = -0.001
	err = check_solution(&bad)
	require.Error(t, err)
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "w_3", ferr.Quantity)

	// 飽和絶対湿度を超過
	bad = *sol
	bad.S5.W = get_w_sat(bad.S5.Theta) + 0.001
	err = check_solution(&bad)
	require.Error(t, err)
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "w_5", ferr.Quantity)
}
