package cool

/*
1次元求根の設定

    Tol: 収束判定の区間幅, （beta の場合 -, m の場合 kg/s）
    MaxIter: 反復回数の上限
    BetaMin: VBP のバイパスファクタの探索下限, -
    BetaMax: VBP のバイパスファクタの探索上限, -
    MMin: VAV の給気質量流量の探索下限, kg/s
    MMax: VAV の給気質量流量の探索上限, kg/s

    Notes:
        バイパスファクタの既定の探索範囲は実在するコイルの実用域に
        限定している。この範囲では室内湿度の残差がバイパスファクタに
        対して単調であり、二分法の区間仮定が成り立つ。上限を 1 に
        近づけると接触流の温度が非現実的に低くなり残差の単調性が
        失われるため、広げる場合は呼び出し側の責任で設定すること。
*/
type RootOptions struct {
	Tol     float64
	MaxIter int
	BetaMin float64
	BetaMax float64
	MMin    float64
	MMax    float64
}

func DefaultRootOptions() RootOptions {
	return RootOptions{
		Tol:     1.0e-6,
		MaxIter: 100,
		BetaMin: 0.01,
		BetaMax: 0.40,
		MMin:    0.1,
		MMax:    10.0,
	}
}

// 飽和曲線の線形化点の初期値, degree C
// 装置露点の典型的な値。反復の出発点としてのみ用いる。
const theta_s0_init = 10.0

/*
二分法による求根

    Args:
        f: 残差関数
        a: 探索区間の下端
        b: 探索区間の上端
        opt: RootOptions
        target: 制御対象の変数（失敗時の報告用）

    Returns:
        残差がゼロとなる操作量

    Notes:
        区間の端点で残差がゼロの場合はその端点を根として返す。
        区間の両端で残差の符号が同じ場合は根を挟めないため
        NoSolutionError（物理的に解が存在しない）を返す。
        上限回数内に収束しない場合は NotConvergedError を返す。
*/
func find_root(
	f func(float64) (float64, error),
	a float64,
	b float64,
	opt RootOptions,
	target ControlledVariable,
) (float64, error) {
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}

	// 区間の端点がそのまま根である場合
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}

	if fa*fb >= 0 {
		return 0, &NoSolutionError{Target: target, A: a, B: b, Fa: fa, Fb: fb}
	}

	// Bisection method
	var c float64
	for i := 0; i < opt.MaxIter; i++ {
		c = (a + b) / 2.0

		fc, err := f(c)
		if err != nil {
			return 0, err
		}

		if fc == 0 || (b-a)/2.0 < opt.Tol {
			return c, nil
		}

		if fc*fa < 0 {
			b = c
		} else {
			a = c
			fa = fc
		}
	}

	return 0, &NotConvergedError{Iterations: opt.MaxIter}
}

/*
解析結果から制御対象の変数の値を取り出す。

    Args:
        sol: Solution
        target: 制御対象の変数

    Returns:
        室温, degree C / 室内相対湿度, - / 給気温度, degree C のいずれか
*/
func get_controlled_value(sol *Solution, target ControlledVariable) float64 {
	switch target {
	case ZONE_THETA:
		return sol.S5.Theta
	case ZONE_W:
		return sol.Phi5
	case SUPPLY_THETA:
		return sol.S4.Theta
	default:
		panic("invalid controlled variable")
	}
}

/*
外側の探索の制御対象と設定値を検査する。

    Args:
        target: 制御対象の変数
        setpoint: 設定値

    Returns:
        不正な組合せの場合 InvalidInputError

    Notes:
        探索で扱える制御対象は室内湿度と給気温度のみ。室温は CAV の
        制御器が受け持つ結合であり、バイパスファクタや風量の探索対象
        としての結合は定義されていないため不正な入力として扱う。
*/
func check_target(target ControlledVariable, setpoint float64) error {
	switch target {
	case SUPPLY_THETA:
		if setpoint <= -273.15 {
			return &InvalidInputError{Field: "setpoint", Value: setpoint}
		}
		return nil
	case ZONE_W:
		if setpoint < 0.0 || setpoint > 1.0 {
			return &InvalidInputError{Field: "setpoint", Value: setpoint}
		}
		return nil
	default:
		return &InvalidInputError{Field: "target", Value: float64(target)}
	}
}

/*
探索対象と同じ制御量を受け持つ内側の制御器を無効化する。

    Args:
        p: Parameters
        target: 外側の探索の制御対象

    Returns:
        Parameters（複製）

    Notes:
        無効化しないと内側の制御器が制御量を設定値に固定してしまい、
        外側の探索の残差が操作量によらず一定となる。
        給気温度はどの内側制御器も直接拘束しないため変更しない。
*/
func release_inner_controller(p Parameters, target ControlledVariable) Parameters {
	switch target {
	case ZONE_W:
		p.CtrlW = ControlOff()
	case SUPPLY_THETA:
		// no-op
	default:
		panic("invalid controlled variable")
	}
	return p
}

/*
CAV方式（定風量）の解析を行う。

    Args:
        in: Inputs

    Returns:
        Solution

    Notes:
        給気質量流量・バイパスファクタは固定。設定した2つの制御器の
        制御式を含む連立一次方程式を直接解くのみで、外側の探索はない。
        同一の入力に対する解は決定的で再現可能。
*/
func (mdl *MxCcRhTzBl) CAV_wd(in Inputs) (*Solution, error) {
	if err := check_inputs(mdl.Params, in); err != nil {
		return nil, err
	}

	sol, err := solve_lin(mdl.Params, in, theta_s0_init)
	if err != nil {
		return nil, err
	}

	if err := check_solution(sol); err != nil {
		return nil, err
	}

	return sol, nil
}

/*
VBP方式（バイパスファクタ制御）の解析を行う。

    Args:
        target: 制御対象の変数
        setpoint: 設定値（ZONE_W の場合は相対湿度 0.0 - 1.0）
        in: Inputs

    Returns:
        Solution

    Notes:
        給気質量流量は固定し、制御対象が設定値に一致するような
        バイパスファクタを [BetaMin, BetaMax] の二分法で探索する。
        試行のたびに連立一次方程式を解き直す。
        定風量のまま給気温度をバイパスファクタで制御することは
        できないため、SUPPLY_THETA を指定した場合は根を挟めず
        NoSolutionError となる。
*/
func (mdl *MxCcRhTzBl) VBP_wd(target ControlledVariable, setpoint float64, in Inputs) (*Solution, error) {
	if err := check_target(target, setpoint); err != nil {
		return nil, err
	}

	p := release_inner_controller(mdl.Params, target)

	if err := check_inputs(p, in); err != nil {
		return nil, err
	}

	f := func(beta float64) (float64, error) {
		q := p
		q.Beta = beta
		sol, err := solve_lin(q, in, theta_s0_init)
		if err != nil {
			return 0, err
		}
		return get_controlled_value(sol, target) - setpoint, nil
	}

	beta, err := find_root(f, mdl.Root.BetaMin, mdl.Root.BetaMax, mdl.Root, target)
	if err != nil {
		return nil, err
	}

	p.Beta = beta
	sol, err := solve_lin(p, in, theta_s0_init)
	if err != nil {
		return nil, err
	}

	if err := check_solution(sol); err != nil {
		return nil, err
	}

	return sol, nil
}

/*
VAV方式（変風量制御）の解析を行う。

    Args:
        target: 制御対象の変数
        setpoint: 設定値（ZONE_W の場合は相対湿度 0.0 - 1.0）
        in: Inputs

    Returns:
        Solution

    Notes:
        バイパスファクタは固定し、制御対象が設定値に一致するような
        給気質量流量を [max(MMin, m_o), MMax] の二分法で探索する。
        試行のたびに連立一次方程式を解き直す。
*/
func (mdl *MxCcRhTzBl) VAV_wd(target ControlledVariable, setpoint float64, in Inputs) (*Solution, error) {
	if err := check_target(target, setpoint); err != nil {
		return nil, err
	}

	p := release_inner_controller(mdl.Params, target)

	a := mdl.Root.MMin
	if p.MO > a {
		a = p.MO
	}
	b := mdl.Root.MMax
	if a >= b {
		return nil, &InvalidInputError{Field: "m_o", Value: p.MO}
	}

	{
		q := p
		q.M = a
		if err := check_inputs(q, in); err != nil {
			return nil, err
		}
	}

	f := func(m float64) (float64, error) {
		q := p
		q.M = m
		sol, err := solve_lin(q, in, theta_s0_init)
		if err != nil {
			return 0, err
		}
		return get_controlled_value(sol, target) - setpoint, nil
	}

	m, err := find_root(f, a, b, mdl.Root, target)
	if err != nil {
		return nil, err
	}

	p.M = m
	sol, err := solve_lin(p, in, theta_s0_init)
	if err != nil {
		return nil, err
	}

	if err := check_solution(sol); err != nil {
		return nil, err
	}

	return sol, nil
}
