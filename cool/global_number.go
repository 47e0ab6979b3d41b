package cool

// 乾き空気の定圧比熱, J/kg K
func get_c_a() float64 {
	return 1005.0
}

// 水蒸気の定圧比熱, J/kg K
func get_c_v() float64 {
	return 1846.0
}

// 水の蒸発潜熱, J/kg
func get_l_wtr() float64 {
	return 2501000.0
}

// 大気圧, Pa
func get_f() float64 {
	return 101325.0
}
