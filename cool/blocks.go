package cool

/*
混合部の出口空気状態を計算する。

    Args:
        outdoor: 外気の空気状態
        recirculated: 還気（室空気）の空気状態
        m: 給気質量流量, kg/s
        m_o: 外気質量流量, kg/s

    Returns:
        混合後の空気状態

    Notes:
        質量流量による重み付き平均。
*/
func get_mixed(outdoor, recirculated AirState, m, m_o float64) AirState {
	return AirState{
		Theta: (m_o*outdoor.Theta + (m-m_o)*recirculated.Theta) / m,
		W:     (m_o*outdoor.W + (m-m_o)*recirculated.W) / m,
	}
}

/*
バイパス付き冷却コイルの出口空気状態とコイル熱量を計算する。

    Args:
        inlet: 入口（混合後）の空気状態
        adp: 接触流出口の空気状態（飽和曲線上、装置露点近傍）
        beta: バイパスファクタ, -
        m: 給気質量流量, kg/s

    Returns:
        (1) コイル出口（再混合後）の空気状態
        (2) 全熱量, W（冷却時は負）
        (3) 顕熱量, W
        (4) 潜熱量, W

    Notes:
        出口状態は入口状態と接触流出口状態の beta による内分点。
        beta = 0 で全量接触、beta = 1 で冷却効果なし。
        熱量は接触流 m(1-beta) のエンタルピー変化から求める。
*/
func get_cooling_coil(inlet, adp AirState, beta, m float64) (AirState, float64, float64, float64) {
	outlet := AirState{
		Theta: beta*inlet.Theta + (1.0-beta)*adp.Theta,
		W:     beta*inlet.W + (1.0-beta)*adp.W,
	}

	m_contact := m * (1.0 - beta)

	q_s_cc := m_contact * get_c_a() * (adp.Theta - inlet.Theta)
	q_l_cc := m_contact * get_l_wtr() * (adp.W - inlet.W)

	return outlet, q_s_cc + q_l_cc, q_s_cc, q_l_cc
}

/*
再熱コイルの出口空気状態を計算する。

    Args:
        inlet: 入口（コイル出口）の空気状態
        m: 給気質量流量, kg/s
        q_s_hc: 再熱コイル顕熱量, W

    Returns:
        給気の空気状態

    Notes:
        絶対湿度は変化しない。
*/
func get_reheat(inlet AirState, m, q_s_hc float64) AirState {
	return AirState{
		Theta: inlet.Theta + q_s_hc/(m*get_c_a()),
		W:     inlet.W,
	}
}

/*
室の空気状態を計算する。

    Args:
        supply: 給気の空気状態
        in: Inputs
        m: 給気質量流量, kg/s

    Returns:
        (1) 室の空気状態
        (2) 室の顕熱取得量, W（外皮・すきま風・建物顕熱負荷の合算）
        (3) 室の潜熱取得量, W（すきま風・建物潜熱負荷の合算）

    Notes:
        顕熱収支  m c (theta_4 - theta_5) + (UA + m_i c)(theta_o - theta_5) + QsBL = 0
        潜熱収支  m l (w_4 - w_5) + m_i l (w_o - w_5) + QlBL = 0
        を theta_5, w_5 について解いた閉形式。室の空気は還気として
        混合部に戻るため、系全体としては連立で解く必要がある。
*/
func get_zone(supply AirState, in Inputs, m float64) (AirState, float64, float64) {
	c_a := get_c_a()
	l := get_l_wtr()
	w_o := in.w_o()

	theta_5 := (m*c_a*supply.Theta + (in.UA+in.MI*c_a)*in.ThetaO + in.QsBL) /
		(m*c_a + in.UA + in.MI*c_a)
	w_5 := (m*supply.W + in.MI*w_o + in.QlBL/l) / (m + in.MI)

	q_s_tz := (in.UA+in.MI*c_a)*(in.ThetaO-theta_5) + in.QsBL
	q_l_tz := in.MI*l*(w_o-w_5) + in.QlBL

	return AirState{Theta: theta_5, W: w_5}, q_s_tz, q_l_tz
}

/*
解析結果の各ブロックの収支残差を計算する。

    Args:
        sol: Solution
        in: Inputs

    Returns:
        残差, W 相当, [混合顕熱, 混合潜熱, コイル顕熱, コイル潜熱,
        再熱顕熱, 室顕熱, 室潜熱, コイル全熱量]

    Notes:
        正しい解ではすべて数値誤差の範囲でゼロとなる。
*/
func get_residuals(sol *Solution, in Inputs) []float64 {
	c_a := get_c_a()
	l := get_l_wtr()

	mixed := get_mixed(sol.So, sol.S5, sol.M, sol.MOut)
	coil_out, q_t_cc, _, _ := get_cooling_coil(sol.S1, sol.S2, sol.Beta, sol.M)
	supply := get_reheat(sol.S3, sol.M, sol.QsHC)
	zone, _, _ := get_zone(sol.S4, in, sol.M)

	return []float64{
		sol.M * c_a * (mixed.Theta - sol.S1.Theta),
		sol.M * l * (mixed.W - sol.S1.W),
		sol.M * c_a * (coil_out.Theta - sol.S3.Theta),
		sol.M * l * (coil_out.W - sol.S3.W),
		sol.M * c_a * (supply.Theta - sol.S4.Theta),
		sol.M * c_a * (zone.Theta - sol.S5.Theta),
		sol.M * l * (zone.W - sol.S5.W),
		q_t_cc - sol.QtCC,
	}
}
