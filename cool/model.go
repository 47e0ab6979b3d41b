package cool

import (
	"fmt"
)

// 制御器の動作モード
type ControlMode int

const (
	CONTROL_OFF          ControlMode = iota + 1 // CONTROL_OFF : 制御なし（操作量 0 固定）
	CONTROL_PROPORTIONAL                        // CONTROL_PROPORTIONAL : 比例制御
	CONTROL_IDEAL                               // CONTROL_IDEAL : 理想制御（制御量 = 設定値）
)

/*
比例制御器

    Notes:
        旧実装はゲインに 1e10 等の大きな定数を与えて理想制御を近似していた。
        比例制御式は K で正規化して係数行列に置くため大きなゲインでも
        解けるが、理想制御は CONTROL_IDEAL として明示的に扱う。
        CONTROL_IDEAL は比例制御式を K で割った K→∞ の極限
        （制御量 = 設定値、操作量は自由変数）に等しい。
*/
type Controller struct {
	Mode ControlMode
	Gain float64
}

// 制御なしの制御器を作成する。操作量は 0 に固定される。
func ControlOff() Controller {
	return Controller{Mode: CONTROL_OFF}
}

// 理想制御の制御器を作成する。制御量が設定値に一致するよう操作量が定まる。
func ControlIdeal() Controller {
	return Controller{Mode: CONTROL_IDEAL}
}

/*
比例制御の制御器を作成する。

    Args:
        k: 比例ゲイン

    Returns:
        Controller

    Notes:
        k = 0 は制御なしと同じ挙動になる。
        旧実装互換のため、十分大きな k は理想制御を近似する。
*/
func NewProportional(k float64) Controller {
	return Controller{Mode: CONTROL_PROPORTIONAL, Gain: k}
}

func (c Controller) validate(field string) error {
	switch c.Mode {
	case CONTROL_OFF, CONTROL_IDEAL:
		return nil
	case CONTROL_PROPORTIONAL:
		if c.Gain < 0.0 {
			return &InvalidInputError{Field: field + ".gain", Value: c.Gain}
		}
		return nil
	default:
		return &InvalidInputError{Field: field + ".mode", Value: float64(c.Mode)}
	}
}

/*
モデルのパラメータ

    m: 給気質量流量, kg/s
    m_o: 外気質量流量, kg/s
    beta: 冷却コイルのバイパスファクタ, -
    ctrl_theta: 冷却コイル全熱量を操作する室温制御器
    ctrl_w: 再熱コイル顕熱量を操作する室内絶対湿度制御器

    Notes:
        解析の呼び出し間で各フィールドを個別に上書きしてよい。
        1回の解析呼び出しの間は読み取り専用として扱われる。
*/
type Parameters struct {
	M         float64
	MO        float64
	Beta      float64
	CtrlTheta Controller
	CtrlW     Controller
}

func NewParameters(m, m_o, beta float64, ctrl_theta, ctrl_w Controller) Parameters {
	return Parameters{
		M:         m,
		MO:        m_o,
		Beta:      beta,
		CtrlTheta: ctrl_theta,
		CtrlW:     ctrl_w,
	}
}

/*
解析1回分の入力値

    theta_o: 外気温度, degree C
    phi_o: 外気相対湿度, 0.0 - 1.0
    theta_5_sp: 室温設定値, degree C
    phi_5_sp: 室内相対湿度設定値, 0.0 - 1.0
    m_i: すきま風質量流量, kg/s
    ua: 外皮熱損失係数, W/K
    q_s_bl: 建物顕熱負荷, W
    q_l_bl: 建物潜熱負荷, W

    Notes:
        値渡しで受け取り、解析中に変更されることはない。
        旧実装の actual[i] への代入による隠れた状態変更は廃止した。
*/
type Inputs struct {
	ThetaO   float64
	PhiO     float64
	Theta5Sp float64
	Phi5Sp   float64
	MI       float64
	UA       float64
	QsBL     float64
	QlBL     float64
}

func NewInputs(theta_o, phi_o, theta_5_sp, phi_5_sp, m_i, ua, q_s_bl, q_l_bl float64) Inputs {
	return Inputs{
		ThetaO:   theta_o,
		PhiO:     phi_o,
		Theta5Sp: theta_5_sp,
		Phi5Sp:   phi_5_sp,
		MI:       m_i,
		UA:       ua,
		QsBL:     q_s_bl,
		QlBL:     q_l_bl,
	}
}

// 室内絶対湿度の設定値, kg/kgDA
// 相対湿度設定値を室温設定値における絶対湿度に換算する。
func (in Inputs) w_5_sp() float64 {
	return get_w(in.Theta5Sp, in.Phi5Sp)
}

// 外気の絶対湿度, kg/kgDA
func (in Inputs) w_o() float64 {
	return get_w(in.ThetaO, in.PhiO)
}

// 系統内のある節点の空気状態
type AirState struct {
	// 空気温度, degree C
	Theta float64
	// 絶対湿度, kg/kgDA
	W float64
}

// 相対湿度, 0.0 - 1.0
func (s AirState) phi() float64 {
	return get_phi(s.Theta, s.W)
}

// 比エンタルピー, J/kgDA
func (s AirState) h() float64 {
	return get_h(s.Theta, s.W)
}

/*
解析結果

    節点番号:
        o: 外気
        1: 混合後
        2: 冷却コイル接触流出口（飽和曲線上、装置露点近傍）
        3: バイパス流と接触流の再混合後（コイル出口）
        4: 再熱後（給気）
        5: 室

    QtCC は冷却コイル全熱量（冷却時は負）、QsHC は再熱コイル顕熱量。
    QsTZ, QlTZ は外皮・すきま風・建物負荷を合算した室の顕熱・潜熱取得量。
*/
type Solution struct {
	So AirState
	S1 AirState
	S2 AirState
	S3 AirState
	S4 AirState
	S5 AirState

	QtCC float64
	QsCC float64
	QlCC float64
	QsHC float64
	QsTZ float64
	QlTZ float64

	// 解析に用いた給気質量流量, kg/s
	M float64
	// 解析に用いた外気質量流量, kg/s
	MOut float64
	// 解析に用いたバイパスファクタ, -
	Beta float64
	// 室の相対湿度, 0.0 - 1.0
	Phi5 float64
}

/*
混合・冷却コイル（バイパス付き）・再熱コイル・室・建物負荷で構成される
定常状態の空調系統モデル

    Notes:
        解析の呼び出しは状態を持たない。同一インスタンスを並行して
        使用する場合は呼び出し側で直列化するか Parameters を複製すること。
*/
type MxCcRhTzBl struct {
	Params Parameters
	In     Inputs
	Root   RootOptions
}

/*
モデルを作成する。

    Args:
        params: Parameters
        in: 既定の入力値。各解析呼び出しで上書き可能。

    Returns:
        MxCcRhTzBl クラス
*/
func NewMxCcRhTzBl(params Parameters, in Inputs) *MxCcRhTzBl {
	return &MxCcRhTzBl{
		Params: params,
		In:     in,
		Root:   DefaultRootOptions(),
	}
}

// 制御対象の変数
type ControlledVariable int

const (
	ZONE_THETA   ControlledVariable = iota + 1 // ZONE_THETA : 室温 theta_5
	ZONE_W                                     // ZONE_W : 室内湿度 phi_5
	SUPPLY_THETA                               // SUPPLY_THETA : 給気温度 theta_4
)

func (v ControlledVariable) String() string {
	switch v {
	case ZONE_THETA:
		return "zone_theta"
	case ZONE_W:
		return "zone_w"
	case SUPPLY_THETA:
		return "supply_theta"
	default:
		return fmt.Sprintf("ControlledVariable(%d)", int(v))
	}
}

/*
文字列から制御対象の変数を取得する。

    Args:
        s: "zone_theta", "zone_w", "supply_theta" のいずれか

    Returns:
        ControlledVariable
*/
func ControlledVariableFromString(s string) (ControlledVariable, error) {
	switch s {
	case "zone_theta":
		return ZONE_THETA, nil
	case "zone_w":
		return ZONE_W, nil
	case "supply_theta":
		return SUPPLY_THETA, nil
	default:
		return 0, fmt.Errorf("invalid controlled variable: %q", s)
	}
}

/*
文字列から制御器の動作モードを取得する。

    Args:
        s: "off", "proportional", "ideal" のいずれか
        gain: 比例ゲイン（proportional のときのみ使用）

    Returns:
        Controller
*/
func ControllerFromString(s string, gain float64) (Controller, error) {
	switch s {
	case "off":
		return ControlOff(), nil
	case "proportional":
		return NewProportional(gain), nil
	case "ideal":
		return ControlIdeal(), nil
	default:
		return Controller{}, fmt.Errorf("invalid control mode: %q", s)
	}
}
