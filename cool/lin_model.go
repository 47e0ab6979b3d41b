package cool

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// 未知数ベクトル x の並び
const (
	i_theta_1 = iota // 混合後の空気温度, degree C
	i_w_1            // 混合後の絶対湿度, kg/kgDA
	i_theta_2        // 接触流出口の空気温度, degree C
	i_w_2            // 接触流出口の絶対湿度, kg/kgDA
	i_theta_3        // コイル出口の空気温度, degree C
	i_w_3            // コイル出口の絶対湿度, kg/kgDA
	i_theta_4        // 給気温度, degree C
	i_w_4            // 給気絶対湿度, kg/kgDA
	i_theta_5        // 室温, degree C
	i_w_5            // 室内絶対湿度, kg/kgDA
	i_q_t_cc         // 冷却コイル全熱量, W
	i_q_s_hc         // 再熱コイル顕熱量, W
	n_x              // 未知数の数
)

/*
系統全体の連立一次方程式 A x = b を組み立てて解く。

    Args:
        p: Parameters
        in: Inputs
        theta_s0: 飽和曲線の線形化点の空気温度, degree C

    Returns:
        解ベクトル x, [n_x]

    Notes:
        方程式は各ブロックの熱・水分収支と2つの制御式からなる。
            式 0: 混合部の顕熱収支
            式 1: 混合部の水分収支
            式 2: 接触流出口の飽和条件（theta_s0 まわりの線形化）
            式 3: 冷却コイル接触流のエンタルピー収支（QtCC の定義）
            式 4: バイパス流再混合の温度
            式 5: バイパス流再混合の絶対湿度
            式 6: 再熱コイルの顕熱収支（QsHC の定義）
            式 7: 再熱コイルで絶対湿度不変
            式 8: 室の顕熱収支（外皮・すきま風・建物顕熱負荷）
            式 9: 室の潜熱収支（すきま風・建物潜熱負荷）
            式10: 室温制御式 QtCC = Ktheta (theta_5_sp - theta_5)
            式11: 室内湿度制御式 QsHC = Kw (w_5_sp - w_5)
        理想制御の場合、制御式は制御量 = 設定値 に置き換わり
        操作量は自由変数となる。制御なしの場合、操作量 = 0 となる。
        解けない場合（流量ゼロ等）は SingularSystemError を返す。
*/
func lin_model(p Parameters, in Inputs, theta_s0 float64) (*mat.VecDense, error) {
	c_a := get_c_a()
	l := get_l_wtr()

	m := p.M
	m_o := p.MO
	beta := p.Beta

	w_o := in.w_o()
	w_5_sp := in.w_5_sp()

	a := mat.NewDense(n_x, n_x, nil)
	b := mat.NewVecDense(n_x, nil)

	// 式 0: m theta_1 - (m - m_o) theta_5 = m_o theta_o
	a.Set(0, i_theta_1, m)
	a.Set(0, i_theta_5, -(m - m_o))
	b.SetVec(0, m_o*in.ThetaO)

	// 式 1: m w_1 - (m - m_o) w_5 = m_o w_o
	a.Set(1, i_w_1, m)
	a.Set(1, i_w_5, -(m - m_o))
	b.SetVec(1, m_o*w_o)

	// 式 2: w_2 - w_sat'(theta_s0) theta_2
	//         = w_sat(theta_s0) - w_sat'(theta_s0) theta_s0
	der := get_der_w_sat(theta_s0)
	a.Set(2, i_w_2, 1.0)
	a.Set(2, i_theta_2, -der)
	b.SetVec(2, get_w_sat(theta_s0)-der*theta_s0)

	// 式 3: m (1-beta) [c (theta_2 - theta_1) + l (w_2 - w_1)] - QtCC = 0
	m_contact := m * (1.0 - beta)
	a.Set(3, i_theta_1, -m_contact*c_a)
	a.Set(3, i_w_1, -m_contact*l)
	a.Set(3, i_theta_2, m_contact*c_a)
	a.Set(3, i_w_2, m_contact*l)
	a.Set(3, i_q_t_cc, -1.0)

	// 式 4: theta_3 - beta theta_1 - (1-beta) theta_2 = 0
	a.Set(4, i_theta_3, 1.0)
	a.Set(4, i_theta_1, -beta)
	a.Set(4, i_theta_2, -(1.0 - beta))

	// 式 5: w_3 - beta w_1 - (1-beta) w_2 = 0
	a.Set(5, i_w_3, 1.0)
	a.Set(5, i_w_1, -beta)
	a.Set(5, i_w_2, -(1.0 - beta))

	// 式 6: m c theta_4 - m c theta_3 - QsHC = 0
	a.Set(6, i_theta_4, m*c_a)
	a.Set(6, i_theta_3, -m*c_a)
	a.Set(6, i_q_s_hc, -1.0)

	// 式 7: w_4 - w_3 = 0
	a.Set(7, i_w_4, 1.0)
	a.Set(7, i_w_3, -1.0)

	// 式 8: m c theta_4 - (m c + UA + m_i c) theta_5
	//         = -(UA + m_i c) theta_o - QsBL
	a.Set(8, i_theta_4, m*c_a)
	a.Set(8, i_theta_5, -(m*c_a + in.UA + in.MI*c_a))
	b.SetVec(8, -(in.UA+in.MI*c_a)*in.ThetaO-in.QsBL)

	// 式 9: m l w_4 - (m + m_i) l w_5 = -m_i l w_o - QlBL
	a.Set(9, i_w_4, m*l)
	a.Set(9, i_w_5, -(m+in.MI)*l)
	b.SetVec(9, -in.MI*l*w_o-in.QlBL)

	// 式10: 室温制御（冷却コイル全熱量を操作）
	set_control_row(a, b, 10, p.CtrlTheta, i_theta_5, i_q_t_cc, in.Theta5Sp)

	// 式11: 室内湿度制御（再熱コイル顕熱量を操作）
	set_control_row(a, b, 11, p.CtrlW, i_w_5, i_q_s_hc, w_5_sp)

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, &SingularSystemError{Err: err}
	}

	return &x, nil
}

/*
制御式の行を係数行列に設定する。

    Args:
        a: 係数行列
        b: 右辺ベクトル
        row: 行番号
        ctrl: Controller
        i_pv: 制御量の列番号
        i_mv: 操作量の列番号
        sp: 設定値
*/
func set_control_row(a *mat.Dense, b *mat.VecDense, row int, ctrl Controller, i_pv, i_mv int, sp float64) {
	switch ctrl.Mode {
	case CONTROL_OFF:
		// 操作量 = 0
		a.Set(row, i_mv, 1.0)
		b.SetVec(row, 0.0)
	case CONTROL_PROPORTIONAL:
		if ctrl.Gain == 0.0 {
			// ゲインゼロは制御なしと同じ（操作量 = 0）
			a.Set(row, i_mv, 1.0)
			b.SetVec(row, 0.0)
			break
		}
		// 比例制御式 K pv + mv = K sp を K で正規化した
		// pv + mv / K = sp の形で置く。ゲインが大きくても
		// 係数行列の条件数が悪化せず、K→∞ で理想制御の行に一致する。
		a.Set(row, i_pv, 1.0)
		a.Set(row, i_mv, 1.0/ctrl.Gain)
		b.SetVec(row, sp)
	case CONTROL_IDEAL:
		// pv = sp（比例制御式を K で割った K→∞ の極限）
		a.Set(row, i_pv, 1.0)
		b.SetVec(row, sp)
	default:
		panic("invalid control mode")
	}
}

/*
飽和曲線の線形化点を反復更新しながら連立方程式を解く。

    Args:
        p: Parameters
        in: Inputs
        theta_s0: 線形化点の初期値, degree C

    Returns:
        Solution

    Notes:
        x = lin_model(theta_s0) を解き、得られた接触流出口温度 theta_2 を
        新しい線形化点として、変化量が tol 未満になるまで繰り返す。
        上限回数内に収束しない場合は NotConvergedError を返す。
*/
func solve_lin(p Parameters, in Inputs, theta_s0 float64) (*Solution, error) {
	const tol = 0.01
	const max_iter = 50

	for i := 0; i < max_iter; i++ {
		x, err := lin_model(p, in, theta_s0)
		if err != nil {
			return nil, err
		}

		theta_s := x.AtVec(i_theta_2)
		if math.IsNaN(theta_s) {
			// 飽和水蒸気圧の適用範囲を外れた場合など
			return nil, &NotConvergedError{Iterations: i + 1}
		}
		if math.Abs(theta_s-theta_s0) < tol {
			return make_solution(p, in, x), nil
		}

		theta_s0 = theta_s
	}

	return nil, &NotConvergedError{Iterations: max_iter}
}

/*
解ベクトルから解析結果を作成する。

    Args:
        p: Parameters
        in: Inputs
        x: 解ベクトル, [n_x]

    Returns:
        Solution

    Notes:
        冷却コイルの顕熱・潜熱の内訳と室の熱取得量は
        ブロック関数で解から復元する。
*/
func make_solution(p Parameters, in Inputs, x *mat.VecDense) *Solution {
	sol := &Solution{
		So:   AirState{Theta: in.ThetaO, W: in.w_o()},
		S1:   AirState{Theta: x.AtVec(i_theta_1), W: x.AtVec(i_w_1)},
		S2:   AirState{Theta: x.AtVec(i_theta_2), W: x.AtVec(i_w_2)},
		S3:   AirState{Theta: x.AtVec(i_theta_3), W: x.AtVec(i_w_3)},
		S4:   AirState{Theta: x.AtVec(i_theta_4), W: x.AtVec(i_w_4)},
		S5:   AirState{Theta: x.AtVec(i_theta_5), W: x.AtVec(i_w_5)},
		QtCC: x.AtVec(i_q_t_cc),
		QsHC: x.AtVec(i_q_s_hc),
		M:    p.M,
		MOut: p.MO,
		Beta: p.Beta,
	}

	_, _, q_s_cc, q_l_cc := get_cooling_coil(sol.S1, sol.S2, p.Beta, p.M)
	sol.QsCC = q_s_cc
	sol.QlCC = q_l_cc

	_, q_s_tz, q_l_tz := get_zone(sol.S4, in, p.M)
	sol.QsTZ = q_s_tz
	sol.QlTZ = q_l_tz

	sol.Phi5 = sol.S5.phi()

	return sol
}

/*
連立方程式を組み立てて解く（モデルのメソッド版）。

    Args:
        theta_s0: 飽和曲線の線形化点の初期値, degree C
        in: Inputs

    Returns:
        Solution
*/
func (mdl *MxCcRhTzBl) Solve_lin(theta_s0 float64, in Inputs) (*Solution, error) {
	if err := check_inputs(mdl.Params, in); err != nil {
		return nil, err
	}

	return solve_lin(mdl.Params, in, theta_s0)
}
