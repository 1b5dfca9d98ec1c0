package domain

// Keys for the loose measurement map on EchoRecord. The entry form stores
// quantitative inputs under these names; the aggregator and composer read
// them back.
const (
	MeasEA       = "ea"       // mitral E/A ratio
	MeasEePrime  = "ee"       // E/e' ratio
	MeasPASPRaw  = "pasp_raw" // TR gradient, mmHg
	MeasLAVolume = "la_volume"
	MeasLVIDs    = "lvids"
	MeasAoA      = "aoa"
	MeasAoSV     = "aosv"
	MeasAoSTJ    = "aostj"
	MeasAscAo    = "ascao"
	MeasAKVmax   = "ak_vmax"
	MeasAKMean   = "ak_mean"
	MeasAVA      = "ava"
	MeasSV       = "sv"
	MeasMKEROA   = "mk_eroa"
	MeasMKRegVol = "mk_regvol"
	MeasMKRF     = "mk_rf"
	MeasTKEROA   = "tk_eroa"
	MeasTKRegVol = "tk_regvol"
	MeasTKRF     = "tk_rf"
	MeasTKVCW    = "tk_vcw"
	MeasPKEROA   = "pk_eroa"
	MeasPKRegVol = "pk_regvol"
	MeasPKRF     = "pk_rf"
	MeasPKDT     = "pk_dt_regjet"
	MeasPKPHT    = "pk_pht_regjet"
	MeasPKPRIdx  = "pk_pr_index"
)

// Flag keys for boolean clinical context on EchoRecord (symptoms and
// supporting findings the guideline engine reads).
const (
	FlagMRSymptomatic = "mr_sympt"
	FlagASSymptomatic = "as_sympt"
	FlagAFPresent     = "af_present"
	FlagASSBPDrop     = "as_sbp_drop"
	MeasASCalcScore   = "as_calc_score"
	MeasASVmaxProg    = "as_vmax_prog"
	MeasASBNP         = "as_bnp"
)
