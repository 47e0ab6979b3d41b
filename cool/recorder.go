package cool

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// 一括解析の1行分の入力値
type CaseRow struct {
	ThetaO   float64 `csv:"theta_o"`
	PhiO     float64 `csv:"phi_o"`
	Theta5Sp float64 `csv:"theta_5_sp"`
	Phi5Sp   float64 `csv:"phi_5_sp"`
	MI       float64 `csv:"m_i"`
	UA       float64 `csv:"ua"`
	QsBL     float64 `csv:"q_s_bl"`
	QlBL     float64 `csv:"q_l_bl"`
}

// 入力値に変換する。
func (r *CaseRow) ToInputs() Inputs {
	return NewInputs(r.ThetaO, r.PhiO, r.Theta5Sp, r.Phi5Sp, r.MI, r.UA, r.QsBL, r.QlBL)
}

// 一括解析の1行分の結果
type ResultRow struct {
	ThetaO float64 `csv:"theta_o"`
	WO     float64 `csv:"w_o"`
	Theta1 float64 `csv:"theta_1"`
	W1     float64 `csv:"w_1"`
	Theta2 float64 `csv:"theta_2"`
	W2     float64 `csv:"w_2"`
	Theta3 float64 `csv:"theta_3"`
	W3     float64 `csv:"w_3"`
	Theta4 float64 `csv:"theta_4"`
	W4     float64 `csv:"w_4"`
	Theta5 float64 `csv:"theta_5"`
	W5     float64 `csv:"w_5"`
	Phi5   float64 `csv:"phi_5"`
	QtCC   float64 `csv:"q_t_cc"`
	QsCC   float64 `csv:"q_s_cc"`
	QlCC   float64 `csv:"q_l_cc"`
	QsHC   float64 `csv:"q_s_hc"`
	QsTZ   float64 `csv:"q_s_tz"`
	QlTZ   float64 `csv:"q_l_tz"`
	M      float64 `csv:"m"`
	Beta   float64 `csv:"beta"`
	Error  string  `csv:"error"`
}

/*
解析結果から結果行を作成する。

    Args:
        sol: Solution（失敗した場合は nil）
        err: 解析の失敗内容（成功した場合は nil）

    Returns:
        ResultRow
*/
func NewResultRow(sol *Solution, err error) *ResultRow {
	if err != nil {
		return &ResultRow{Error: err.Error()}
	}

	return &ResultRow{
		ThetaO: sol.So.Theta,
		WO:     sol.So.W,
		Theta1: sol.S1.Theta,
		W1:     sol.S1.W,
		Theta2: sol.S2.Theta,
		W2:     sol.S2.W,
		Theta3: sol.S3.Theta,
		W3:     sol.S3.W,
		Theta4: sol.S4.Theta,
		W4:     sol.S4.W,
		Theta5: sol.S5.Theta,
		W5:     sol.S5.W,
		Phi5:   sol.Phi5,
		QtCC:   sol.QtCC,
		QsCC:   sol.QsCC,
		QlCC:   sol.QlCC,
		QsHC:   sol.QsHC,
		QsTZ:   sol.QsTZ,
		QlTZ:   sol.QlTZ,
		M:      sol.M,
		Beta:   sol.Beta,
	}
}

/*
一括解析の入力CSVファイルを読み込む。

    Args:
        file_path: CSVファイルのパス

    Returns:
        CaseRow のスライス
*/
func ReadCaseRows(file_path string) ([]*CaseRow, error) {
	if _, err := os.Stat(file_path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file %s is not exist", file_path)
	}

	file, err := os.Open(file_path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*CaseRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

/*
解析結果をCSVファイルに書き出す。

    Args:
        file_path: CSVファイルのパス
        rows: ResultRow のスライス
*/
func WriteResultRows(file_path string, rows []*ResultRow) error {
	file, err := os.Create(file_path)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(&rows, file)
}
