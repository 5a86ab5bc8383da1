package service

// BMI returns the body mass index and its category.
func BMI(weightKg, heightCm float64) (float64, string) {
	m := heightCm / 100
	bmi := weightKg / (m * m)
	switch {
	case bmi < 18.5:
		return bmi, "Underweight"
	case bmi < 25:
		return bmi, "Normal"
	case bmi < 30:
		return bmi, "Overweight"
	}
	return bmi, "Obese"
}
