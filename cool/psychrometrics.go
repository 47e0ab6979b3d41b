package cool

import (
	"math"
)

/*
飽和水蒸気圧を計算する。

    Args:
        theta: 空気温度, degree C

    Returns:
        飽和水蒸気圧, Pa

    Notes:
        0 degree C 以上は水面上、0 degree C 未満は氷面上の式を用いる。
*/
func get_p_vs(theta float64) float64 {
	// 絶対温度の計算
	t := theta + 273.15

	const a1 = -6096.9385
	const a2 = 21.2409642
	const a3 = -0.02711193
	const a4 = 0.00001673952
	const a5 = 2.433502
	const b1 = -6024.5282
	const b2 = 29.32707
	const b3 = 0.010613863
	const b4 = -0.000013198825
	const b5 = -0.49382577

	var p_vs float64
	if theta >= 0.0 {
		p_vs = math.Exp(a1/t + a2 + a3*t + a4*t*t + a5*math.Log(t))
	} else {
		p_vs = math.Exp(b1/t + b2 + b3*t + b4*t*t + b5*math.Log(t))
	}

	return p_vs
}

/*
水蒸気圧から絶対湿度を計算する。

    Args:
        p_v: 水蒸気圧, Pa

    Returns:
        絶対湿度, kg/kgDA
*/
func get_x(p_v float64) float64 {
	f := get_f()

	return 0.622 * p_v / (f - p_v)
}

/*
絶対湿度から水蒸気圧を計算する。

    Args:
        w: 絶対湿度, kg/kgDA

    Returns:
        水蒸気圧, Pa
*/
func get_p_v(w float64) float64 {
	f := get_f()

	return f * w / (w + 0.622)
}

/*
空気温度と相対湿度から絶対湿度を計算する。

    Args:
        theta: 空気温度, degree C
        phi: 相対湿度, 0.0 - 1.0

    Returns:
        絶対湿度, kg/kgDA

    Notes:
        入力値の範囲確認は行わない。呼び出し側の責任とする。
*/
func get_w(theta, phi float64) float64 {
	p_v := phi * get_p_vs(theta)

	return get_x(p_v)
}

/*
空気温度と絶対湿度から相対湿度を計算する。

    Args:
        theta: 空気温度, degree C
        w: 絶対湿度, kg/kgDA

    Returns:
        相対湿度, 0.0 - 1.0
*/
func get_phi(theta, w float64) float64 {
	return get_p_v(w) / get_p_vs(theta)
}

/*
飽和空気の絶対湿度を計算する。

    Args:
        theta: 空気温度, degree C

    Returns:
        飽和空気の絶対湿度, kg/kgDA
*/
func get_w_sat(theta float64) float64 {
	return get_x(get_p_vs(theta))
}

/*
飽和空気の絶対湿度の温度微分を計算する。

    Args:
        theta: 空気温度, degree C

    Returns:
        飽和絶対湿度の温度微分, kg/kgDA K

    Notes:
        中央差分による数値微分。飽和曲線の線形化に用いる。
*/
func get_der_w_sat(theta float64) float64 {
	const d_theta = 0.01

	return (get_w_sat(theta+d_theta) - get_w_sat(theta-d_theta)) / (2.0 * d_theta)
}

/*
湿り空気の比エンタルピーを計算する。

    Args:
        theta: 空気温度, degree C
        w: 絶対湿度, kg/kgDA

    Returns:
        比エンタルピー, J/kgDA
*/
func get_h(theta, w float64) float64 {
	return get_c_a()*theta + w*(get_l_wtr()+get_c_v()*theta)
}
