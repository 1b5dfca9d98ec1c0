package clinical

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardiac-report-server/internal/domain"
)

func TestClassifyIVSd(t *testing.T) {
	tests := []struct {
		name     string
		ivsd     float64
		sex      domain.Sex
		expected string
	}{
		{"Male normal", 10, domain.Male, "Normotroof"},
		{"Male mild", 11, domain.Male, "Mild concentrisch hypertroof"},
		{"Male moderate", 15, domain.Male, "Matig concentrisch hypertroof"},
		{"Male severe", 17, domain.Male, "Ernstig concentrisch hypertroof"},
		{"Female normal", 9, domain.Female, "Normotroof"},
		{"Female mild at male-normal value", 10, domain.Female, "Mild concentrisch hypertroof"},
		{"Female severe", 16, domain.Female, "Ernstig concentrisch hypertroof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyIVSd(tt.ivsd, tt.sex))
		})
	}
}

func TestClassifyLAVI(t *testing.T) {
	tests := []struct {
		lavi     float64
		expected string
	}{
		{30, "Niet gedilateerd"},
		{34, "Niet gedilateerd"},
		{40, "Mild gedilateerd"},
		{45, "Matig gedilateerd"},
		{50, "Ernstig gedilateerd"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyLAVI(tt.lavi))
	}
}

func TestClassifyLVEF(t *testing.T) {
	tests := []struct {
		name     string
		lvef     float64
		sex      domain.Sex
		expected string
	}{
		{"Male normal", 60, domain.Male, "Normaal"},
		{"Male mild", 45, domain.Male, "Mild"},
		{"Male boundary normal", 52, domain.Male, "Normaal"},
		{"Female boundary still mild", 53, domain.Female, "Mild"},
		{"Moderate", 35, domain.Male, "Matig"},
		{"Severe", 25, domain.Female, "Ernstig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLVEF(tt.lvef, tt.sex))
		})
	}
}

func TestSystolicPhrase(t *testing.T) {
	assert.Equal(t, "goede globale en regionale systolische functie", SystolicPhrase("Normaal"))
	assert.Equal(t, "mild verminderde globale systolische functie", SystolicPhrase("Mild"))
	assert.Equal(t, "ernstig verminderde globale systolische functie", SystolicPhrase("Ernstig"))
}

func TestLVMassIndex(t *testing.T) {
	idx, grade := LVMassIndex(200, 2.0, domain.Male)
	assert.Equal(t, 100.0, idx)
	assert.Equal(t, "Normaal", grade)

	idx, grade = LVMassIndex(200, 2.0, domain.Female)
	assert.Equal(t, 100.0, idx)
	assert.Equal(t, "Mild", grade)

	// A missing BSA is clamped rather than dividing by zero
	idx, _ = LVMassIndex(200, 0, domain.Male)
	assert.Equal(t, 2000.0, idx)
}

func TestLVGeometry(t *testing.T) {
	tests := []struct {
		name     string
		severity string
		rwt      float64
		expected string
	}{
		{"Normal mass thin wall", "Normaal", 0.35, "Normotroof"},
		{"Normal mass thick wall", "Normaal", 0.45, "Concentrische remodeling"},
		{"Normal mass low RWT", "Normaal", 0.30, "Eccentrische remodeling"},
		{"Increased mass thick wall", "Mild", 0.45, "Mild concentrisch hypertroof"},
		{"Increased mass low RWT", "Matig", 0.30, "Matig eccentrisch hypertroof"},
		{"Increased mass mid RWT", "Ernstig", 0.38, "Ernstig gemengd hypertroof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LVGeometry(tt.severity, tt.rwt))
		})
	}
}

func TestClassifyLVIDd(t *testing.T) {
	bsa := 2.0

	// Indexed thresholds apply when BSA is known
	assert.Equal(t, "niet gedilateerd", ClassifyLVIDd(60, domain.Male, &bsa))
	assert.Equal(t, "mild gedilateerd", ClassifyLVIDd(64, domain.Male, &bsa))
	assert.Equal(t, "ernstig gedilateerd", ClassifyLVIDd(76, domain.Male, &bsa))

	// Absolute-mm fallback without BSA
	assert.Equal(t, "mild gedilateerd", ClassifyLVIDd(60, domain.Male, nil))
	assert.Equal(t, "niet gedilateerd", ClassifyLVIDd(50, domain.Female, nil))
	assert.Equal(t, "ernstig gedilateerd", ClassifyLVIDd(65, domain.Female, nil))
}

func TestClassifyLVIDs(t *testing.T) {
	mm := 46.0
	idx := 23.0

	// Worst of absolute and indexed wins
	assert.Equal(t, "Ernstig vergroot", ClassifyLVIDs(&mm, &idx, domain.Male))
	assert.Equal(t, "Mild vergroot", ClassifyLVIDs(nil, &idx, domain.Male))
	assert.Equal(t, "Normaal", ClassifyLVIDs(nil, nil, domain.Male))

	mmF := 40.0
	assert.Equal(t, "Matig vergroot", ClassifyLVIDs(&mmF, nil, domain.Female))
}

func TestClassifyTAPSE(t *testing.T) {
	assert.Equal(t, "goede longitudinale systolische functie", ClassifyTAPSE(18))
	assert.Equal(t, "mild verminderde longitudinale systolische functie", ClassifyTAPSE(15))
	assert.Equal(t, "matig verminderde longitudinale systolische functie", ClassifyTAPSE(12))
	assert.Equal(t, "ernstig verminderde longitudinale systolische functie", ClassifyTAPSE(10))
}

func TestClassifyRAVI(t *testing.T) {
	assert.Equal(t, "Niet gedilateerd", ClassifyRAVI(30, domain.Male))
	assert.Equal(t, "Gedilateerd", ClassifyRAVI(33, domain.Male))
	assert.Equal(t, "Gedilateerd", ClassifyRAVI(30, domain.Female))
}

func TestRVClassifiers(t *testing.T) {
	assert.Equal(t, "Hypertroof", RVHypertrophy(6))
	assert.Equal(t, "Normotroof", RVHypertrophy(5))

	basal := 42.0
	mid := 30.0
	assert.Equal(t, "gedilateerd", RVDilatation(&basal, nil))
	assert.Equal(t, "niet gedilateerd", RVDilatation(nil, &mid))
	assert.Equal(t, "niet gedilateerd", RVDilatation(nil, nil))
}
