package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cghiaus/PsychroAn-cool/cool"
)

type ControllerConfig struct {
	Mode string  `json:"mode"`
	Gain float64 `json:"gain"`
}

type ParametersConfig struct {
	M         float64          `json:"m"`
	MO        float64          `json:"m_o"`
	Beta      float64          `json:"beta"`
	CtrlTheta ControllerConfig `json:"ctrl_theta"`
	CtrlW     ControllerConfig `json:"ctrl_w"`
}

type InputsConfig struct {
	ThetaO   float64 `json:"theta_o"`
	PhiO     float64 `json:"phi_o"`
	Theta5Sp float64 `json:"theta_5_sp"`
	Phi5Sp   float64 `json:"phi_5_sp"`
	MI       float64 `json:"m_i"`
	UA       float64 `json:"ua"`
	QsBL     float64 `json:"q_s_bl"`
	QlBL     float64 `json:"q_l_bl"`
}

type Config struct {
	Parameters ParametersConfig `json:"parameters"`
	Inputs     InputsConfig     `json:"inputs"`
	Mode       string           `json:"mode"`
	Target     string           `json:"target"`
	Setpoint   float64          `json:"setpoint"`
}

func main() {
	var case_path string
	flag.StringVar(&case_path, "i", "", "計算を実行するJSONファイル")

	var rows_path string
	flag.StringVar(&rows_path, "rows", "", "1行1ケースの入力CSVファイル（省略時はJSONの入力値で1ケースのみ実行）")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", "out", "出力フォルダ")

	// 引数を受け取る
	flag.Parse()

	if case_path == "" {
		log.Fatal("iオプションを指定してください。")
	}

	run(case_path, rows_path, output_data_dir)
}

/*
解析処理の実行

    Args:
        case_path: 計算条件JSONファイルへのパス
        rows_path: 一括解析の入力CSVファイルへのパス（空の場合は1ケースのみ）
        output_data_dir: 出力フォルダへのパス
*/
func run(case_path string, rows_path string, output_data_dir string) {

	start := time.Now()

	// ---- 事前準備 ----

	// 出力ディレクトリの作成
	if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
		os.Mkdir(output_data_dir, 0755)
	}

	_, err := os.Stat(output_data_dir)
	if os.IsNotExist(err) {
		log.Fatalf("`%s` is not a directory", output_data_dir)
	}

	// 計算条件JSONファイルの読み込み
	log.Printf("計算条件JSONファイルの読み込み開始")
	file, err := os.Open(case_path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		log.Fatal(err)
	}

	mdl, err := make_model(&cfg)
	if err != nil {
		log.Fatal(err)
	}

	// 入力ケースの作成
	var inputs []cool.Inputs
	if rows_path != "" {
		rows, err := cool.ReadCaseRows(rows_path)
		if err != nil {
			log.Fatal(err)
		}
		for _, r := range rows {
			inputs = append(inputs, r.ToInputs())
		}
	} else {
		inputs = append(inputs, make_inputs(&cfg.Inputs))
	}

	// ---- 解析 ----

	log.Printf("解析開始 mode=%s ケース数=%d", cfg.Mode, len(inputs))

	results := make([]*cool.ResultRow, 0, len(inputs))
	n_failed := 0
	for i, in := range inputs {
		sol, err := solve_case(mdl, &cfg, in)
		if err != nil {
			// 失敗したケースは記録して続行する
			log.Printf("ケース %d: %v", i, err)
			n_failed++
		}
		results = append(results, cool.NewResultRow(sol, err))
	}

	// ---- 出力 ----

	out_path := filepath.Join(output_data_dir, "results.csv")
	if err := cool.WriteResultRows(out_path, results); err != nil {
		log.Fatal(err)
	}

	elapsed := time.Since(start)
	log.Printf("解析終了 成功=%d 失敗=%d 経過時間=%s", len(inputs)-n_failed, n_failed, elapsed)
}

/*
計算条件からモデルを作成する。

    Args:
        cfg: Config

    Returns:
        MxCcRhTzBl クラス
*/
func make_model(cfg *Config) (*cool.MxCcRhTzBl, error) {
	ctrl_theta, err := cool.ControllerFromString(cfg.Parameters.CtrlTheta.Mode, cfg.Parameters.CtrlTheta.Gain)
	if err != nil {
		return nil, err
	}

	ctrl_w, err := cool.ControllerFromString(cfg.Parameters.CtrlW.Mode, cfg.Parameters.CtrlW.Gain)
	if err != nil {
		return nil, err
	}

	params := cool.NewParameters(cfg.Parameters.M, cfg.Parameters.MO, cfg.Parameters.Beta, ctrl_theta, ctrl_w)

	return cool.NewMxCcRhTzBl(params, make_inputs(&cfg.Inputs)), nil
}

func make_inputs(ic *InputsConfig) cool.Inputs {
	return cool.NewInputs(ic.ThetaO, ic.PhiO, ic.Theta5Sp, ic.Phi5Sp, ic.MI, ic.UA, ic.QsBL, ic.QlBL)
}

/*
計算条件の方式に応じて1ケースを解析する。

    Args:
        mdl: MxCcRhTzBl クラス
        cfg: Config
        in: 入力値

    Returns:
        Solution
*/
func solve_case(mdl *cool.MxCcRhTzBl, cfg *Config, in cool.Inputs) (*cool.Solution, error) {
	switch cfg.Mode {
	case "cav":
		return mdl.CAV_wd(in)
	case "vbp":
		target, err := cool.ControlledVariableFromString(cfg.Target)
		if err != nil {
			return nil, err
		}
		return mdl.VBP_wd(target, cfg.Setpoint, in)
	case "vav":
		target, err := cool.ControlledVariableFromString(cfg.Target)
		if err != nil {
			return nil, err
		}
		return mdl.VAV_wd(target, cfg.Setpoint, in)
	default:
		log.Fatalf("invalid mode: %s", cfg.Mode)
		return nil, nil
	}
}
