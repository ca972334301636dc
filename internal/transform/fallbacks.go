package transform

// Per-variable fallback source columns, consulted in order when the
// discovered mapping yields no value for a row. These cover common legacy
// EDC naming; first match wins over the fixed priority list.
var fallbackColumns = map[string][]string{
	"STUDYID": {"STUDYID", "STUDY", "STUDY_ID", "PROTOCOL"},
	"SITEID":  {"SITEID", "SITE", "SITE_ID", "SITENO", "CENTER", "CENTRE"},
	"SUBJID":  {"USUBJID", "SUBJID", "SUBJECT_ID", "SUBJECT", "SUBJNO", "PT", "PTNO", "PATIENT_ID", "PATIENT", "RANDNO"},

	"BRTHDTC": {"BRTHDTC", "BRTHDAT", "BIRTHDT", "DOB", "BIRTH_DATE"},
	"RFSTDTC": {"RFSTDTC", "RANDDT", "ENROLLDT", "FIRST_DOSE_DATE"},
	"RFENDTC": {"RFENDTC", "COMPDT", "LAST_DOSE_DATE"},
	"DTHDTC":  {"DTHDTC", "DTHDT", "DEATH_DATE", "DEATHDT"},
	"DTHFL":   {"DTHFL", "DEATH_FLAG", "DIED"},
	"SEX":     {"SEX", "GENDER"},
	"AGE":     {"AGE"},
	"AGEU":    {"AGEU", "AGE_UNITS", "AGEUNIT"},

	"AETERM":  {"AETERM", "AE_TERM", "ADVERSE_EVENT", "AEVERBATIM"},
	"AESTDTC": {"AESTDTC", "AESTDT", "AE_START_DATE", "ONSET_DATE", "ONSETDT", "START_DATE"},
	"AEENDTC": {"AEENDTC", "AEENDT", "AE_END_DATE", "RESOLVED_DATE", "STOP_DATE", "END_DATE"},
	"AESEV":   {"AESEV", "SEVERITY", "INTENSITY"},
	"AESER":   {"AESER", "SERIOUS", "SERIOUS_FLAG"},
	"AEREL":   {"AEREL", "CAUSALITY", "RELATIONSHIP", "RELATED"},
	"AEOUT":   {"AEOUT", "OUTCOME"},
	"AEACN":   {"AEACN", "ACTION_TAKEN", "ACTION"},
	"AETOXGR": {"AETOXGR", "TOXGRADE", "TOX_GRADE", "CTC_GRADE", "GRADE"},

	"VSTESTCD": {"VSTESTCD", "TEST_CODE", "PARAMCD"},
	"VSTEST":   {"VSTEST", "TEST_NAME", "TEST", "PARAM"},
	"VSORRES":  {"VSORRES", "RESULT", "VALUE"},
	"VSORRESU": {"VSORRESU", "UNITS", "UNIT"},
	"VSDTC":    {"VSDTC", "VSDT", "VS_DATE", "MEASUREMENT_DATE", "ASSESSMENT_DATE"},
	"VISITNUM": {"VISITNUM", "VISIT_NUM", "VISITNO"},
	"VISIT":    {"VISIT", "VISIT_NAME"},

	"LBTESTCD": {"LBTESTCD", "TEST_CODE", "PARAMCD", "LAB_CODE"},
	"LBTEST":   {"LBTEST", "TEST_NAME", "TEST", "ANALYTE"},
	"LBORRES":  {"LBORRES", "RESULT", "VALUE", "LAB_RESULT"},
	"LBORRESU": {"LBORRESU", "UNITS", "UNIT"},
	"LBORNRLO": {"LBORNRLO", "NORMAL_LOW", "LOW_LIMIT", "LLN"},
	"LBORNRHI": {"LBORNRHI", "NORMAL_HIGH", "HIGH_LIMIT", "ULN"},
	"LBNRIND":  {"LBNRIND", "ABNORMAL_FLAG", "REF_RANGE_IND"},
	"LBDTC":    {"LBDTC", "LBDT", "COLLECTION_DATE", "SAMPLE_DATE", "DRAW_DATE"},

	"CMTRT":    {"CMTRT", "MEDICATION", "DRUG_NAME", "CONMED", "MED_NAME"},
	"CMSTDTC":  {"CMSTDTC", "CMSTDT", "CM_START_DATE", "START_DATE", "MED_START"},
	"CMENDTC":  {"CMENDTC", "CMENDT", "CM_END_DATE", "END_DATE", "STOP_DATE", "MED_END"},
	"CMDOSE":   {"CMDOSE", "DOSE"},
	"CMDOSU":   {"CMDOSU", "DOSE_UNITS", "UNITS"},
	"CMROUTE":  {"CMROUTE", "ROUTE"},
	"CMDOSFRQ": {"CMDOSFRQ", "FREQUENCY", "FREQ"},
	"CMINDC":   {"CMINDC", "INDICATION", "REASON"},

	"EXTRT":   {"EXTRT", "TREATMENT", "STUDY_DRUG"},
	"EXDOSE":  {"EXDOSE", "DOSE"},
	"EXDOSU":  {"EXDOSU", "DOSE_UNITS", "UNITS"},
	"EXROUTE": {"EXROUTE", "ROUTE"},
	"EXSTDTC": {"EXSTDTC", "EXSTDT", "DOSE_START", "START_DATE", "FIRST_DOSE"},
	"EXENDTC": {"EXENDTC", "EXENDT", "DOSE_END", "END_DATE", "LAST_DOSE"},

	"MHTERM":  {"MHTERM", "HISTORY_TERM", "CONDITION", "DIAGNOSIS"},
	"MHSTDTC": {"MHSTDTC", "ONSET_DATE", "START_DATE", "DIAGNOSIS_DATE"},
	"MHENDTC": {"MHENDTC", "RESOLVED_DATE", "END_DATE"},

	"DSTERM":  {"DSTERM", "DISPOSITION", "DISCONT_REASON", "REASON"},
	"DSDECOD": {"DSDECOD", "STATUS"},
	"DSSTDTC": {"DSSTDTC", "DISPOSITION_DATE", "DISCONT_DATE", "COMPLETION_DATE"},
}
