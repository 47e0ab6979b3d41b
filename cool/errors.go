package cool

import (
	"fmt"
	"math"
)

// 解析前の入力値検査で検出された範囲外の値
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s = %v", e.Field, e.Value)
}

// 連立方程式が特異（解けない）であることを表す。
// 流量ゼロ等の退化したパラメータで発生する。
type SingularSystemError struct {
	Err error
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("singular linear system: %v", e.Err)
}

func (e *SingularSystemError) Unwrap() error {
	return e.Err
}

// 探索区間 [A, B] の中に根が存在しないことを表す。
// 物理的に解が存在しない制御の組合せで発生する。
type NoSolutionError struct {
	Target ControlledVariable
	A      float64
	B      float64
	Fa     float64
	Fb     float64
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf(
		"no root found in the interval [%f, %f] for %s (f(a)=%g, f(b)=%g)",
		e.A, e.B, e.Target, e.Fa, e.Fb)
}

// 反復回数の上限内に収束しなかったことを表す。
// 解が存在しない場合（NoSolutionError）とは区別する。
type NotConvergedError struct {
	Iterations int
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("failed to converge within %d iterations", e.Iterations)
}

// 解析後の検査で検出された物理的に不適切な値
type InfeasibleStateError struct {
	Quantity string
	Value    float64
	Lower    float64
	Upper    float64
}

func (e *InfeasibleStateError) Error() string {
	return fmt.Sprintf(
		"infeasible solution: %s = %g out of range [%g, %g]",
		e.Quantity, e.Value, e.Lower, e.Upper)
}

/*
解析前の入力値検査を行う。

    Args:
        p: Parameters
        in: Inputs

    Returns:
        範囲外の値があれば InvalidInputError
*/
func check_inputs(p Parameters, in Inputs) error {
	if !(p.M > 0.0) {
		return &InvalidInputError{Field: "m", Value: p.M}
	}
	if p.MO < 0.0 || p.MO > p.M {
		return &InvalidInputError{Field: "m_o", Value: p.MO}
	}
	// beta = 1 はコイル接触流量がゼロとなり系が退化するため認めない
	if p.Beta < 0.0 || p.Beta >= 1.0 {
		return &InvalidInputError{Field: "beta", Value: p.Beta}
	}
	if err := p.CtrlTheta.validate("ctrl_theta"); err != nil {
		return err
	}
	if err := p.CtrlW.validate("ctrl_w"); err != nil {
		return err
	}
	if in.PhiO < 0.0 || in.PhiO > 1.0 {
		return &InvalidInputError{Field: "phi_o", Value: in.PhiO}
	}
	if in.Phi5Sp < 0.0 || in.Phi5Sp > 1.0 {
		return &InvalidInputError{Field: "phi_5_sp", Value: in.Phi5Sp}
	}
	if in.ThetaO <= -273.15 {
		return &InvalidInputError{Field: "theta_o", Value: in.ThetaO}
	}
	if in.MI < 0.0 {
		return &InvalidInputError{Field: "m_i", Value: in.MI}
	}
	if in.UA < 0.0 {
		return &InvalidInputError{Field: "ua", Value: in.UA}
	}
	return nil
}

/*
解析後の妥当性検査を行う。

    Args:
        sol: Solution

    Returns:
        破れた不変条件があれば InfeasibleStateError

    Notes:
        バイパスファクタは開区間 (0, 1)、質量流量は正、
        各節点の絶対湿度は非負かつ当該温度の飽和絶対湿度以下であること。
        節点2は飽和曲線の線形化誤差を許容する。
*/
func check_solution(sol *Solution) error {
	const eps_w = 1.0e-5

	if sol.Beta <= 0.0 || sol.Beta >= 1.0 {
		return &InfeasibleStateError{Quantity: "beta", Value: sol.Beta, Lower: 0.0, Upper: 1.0}
	}
	if sol.M <= 0.0 {
		return &InfeasibleStateError{Quantity: "m", Value: sol.M, Lower: 0.0, Upper: math.Inf(1)}
	}

	states := []struct {
		name  string
		state AirState
	}{
		{"w_1", sol.S1},
		{"w_2", sol.S2},
		{"w_3", sol.S3},
		{"w_4", sol.S4},
		{"w_5", sol.S5},
	}
	for _, s := range states {
		w_max := get_w_sat(s.state.Theta) + eps_w
		if s.state.W < 0.0 || s.state.W > w_max {
			return &InfeasibleStateError{Quantity: s.name, Value: s.state.W, Lower: 0.0, Upper: w_max}
		}
	}

	return nil
}
