package terminology

// Default codelist tables. Synonym keys cover the spellings seen in EDC
// exports, including the numeric legacy encodings some capture systems
// still emit ("1" for MILD, "2" for FEMALE, and so on).

// DefaultResolver returns a resolver loaded with the stock codelists.
func DefaultResolver() *Resolver {
	return NewResolver(defaultCodelists())
}

func defaultCodelists() []Codelist {
	return []Codelist{
		NewCodelist("SEX", false,
			[]string{"M", "F", "U", "UNDIFFERENTIATED"},
			map[string]string{
				"MALE":    "M",
				"FEMALE":  "F",
				"UNKNOWN": "U",
				"1":       "M",
				"2":       "F",
			}),
		NewCodelist("NY", false,
			[]string{"Y", "N", "U"},
			map[string]string{
				"YES":     "Y",
				"NO":      "N",
				"TRUE":    "Y",
				"FALSE":   "N",
				"1":       "Y",
				"0":       "N",
				"UNKNOWN": "U",
			}),
		NewCodelist("AESEV", false,
			[]string{"MILD", "MODERATE", "SEVERE"},
			map[string]string{
				"1":       "MILD",
				"2":       "MODERATE",
				"3":       "SEVERE",
				"SLIGHT":  "MILD",
				"INTENSE": "SEVERE",
			}),
		NewCodelist("AEREL", false,
			[]string{"NOT RELATED", "UNLIKELY RELATED", "POSSIBLY RELATED", "PROBABLY RELATED", "RELATED"},
			map[string]string{
				"NONE":               "NOT RELATED",
				"UNRELATED":          "NOT RELATED",
				"UNLIKELY":           "UNLIKELY RELATED",
				"POSSIBLE":           "POSSIBLY RELATED",
				"PROBABLE":           "PROBABLY RELATED",
				"DEFINITE":           "RELATED",
				"DEFINITELY RELATED": "RELATED",
				"1":                  "NOT RELATED",
				"2":                  "UNLIKELY RELATED",
				"3":                  "POSSIBLY RELATED",
				"4":                  "PROBABLY RELATED",
				"5":                  "RELATED",
			}),
		NewCodelist("AEOUT", false,
			[]string{
				"RECOVERED/RESOLVED",
				"RECOVERING/RESOLVING",
				"NOT RECOVERED/NOT RESOLVED",
				"RECOVERED/RESOLVED WITH SEQUELAE",
				"FATAL",
				"UNKNOWN",
			},
			map[string]string{
				"RECOVERED":     "RECOVERED/RESOLVED",
				"RESOLVED":      "RECOVERED/RESOLVED",
				"RECOVERING":    "RECOVERING/RESOLVING",
				"RESOLVING":     "RECOVERING/RESOLVING",
				"ONGOING":       "NOT RECOVERED/NOT RESOLVED",
				"NOT RECOVERED": "NOT RECOVERED/NOT RESOLVED",
				"DEATH":         "FATAL",
				"DIED":          "FATAL",
			}),
		NewCodelist("AEACN", false,
			[]string{
				"DOSE NOT CHANGED",
				"DOSE REDUCED",
				"DOSE INCREASED",
				"DRUG INTERRUPTED",
				"DRUG WITHDRAWN",
				"NOT APPLICABLE",
				"UNKNOWN",
			},
			map[string]string{
				"NONE":         "DOSE NOT CHANGED",
				"NO CHANGE":    "DOSE NOT CHANGED",
				"REDUCED":      "DOSE REDUCED",
				"INTERRUPTED":  "DRUG INTERRUPTED",
				"WITHDRAWN":    "DRUG WITHDRAWN",
				"DISCONTINUED": "DRUG WITHDRAWN",
				"N/A":          "NOT APPLICABLE",
			}),
		NewCodelist("TOXGR", false,
			[]string{"1", "2", "3", "4", "5"},
			map[string]string{
				"GRADE 1": "1",
				"GRADE 2": "2",
				"GRADE 3": "3",
				"GRADE 4": "4",
				"GRADE 5": "5",
			}),
		NewCodelist("AGEU", false,
			[]string{"YEARS", "MONTHS", "WEEKS", "DAYS"},
			map[string]string{
				"YEAR":  "YEARS",
				"YR":    "YEARS",
				"YRS":   "YEARS",
				"MONTH": "MONTHS",
				"WEEK":  "WEEKS",
				"DAY":   "DAYS",
			}),
		NewCodelist("RACE", true,
			[]string{
				"WHITE",
				"BLACK OR AFRICAN AMERICAN",
				"ASIAN",
				"AMERICAN INDIAN OR ALASKA NATIVE",
				"NATIVE HAWAIIAN OR OTHER PACIFIC ISLANDER",
				"OTHER",
				"NOT REPORTED",
			},
			map[string]string{
				"CAUCASIAN":        "WHITE",
				"BLACK":            "BLACK OR AFRICAN AMERICAN",
				"AFRICAN AMERICAN": "BLACK OR AFRICAN AMERICAN",
			}),
		NewCodelist("ETHNIC", true,
			[]string{"HISPANIC OR LATINO", "NOT HISPANIC OR LATINO", "NOT REPORTED", "UNKNOWN"},
			map[string]string{
				"HISPANIC":     "HISPANIC OR LATINO",
				"NOT HISPANIC": "NOT HISPANIC OR LATINO",
			}),
		NewCodelist("ROUTE", true,
			[]string{
				"ORAL",
				"INTRAVENOUS",
				"SUBCUTANEOUS",
				"INTRAMUSCULAR",
				"TOPICAL",
				"TRANSDERMAL",
				"INHALED",
				"RECTAL",
				"OPHTHALMIC",
			},
			map[string]string{
				"PO":   "ORAL",
				"IV":   "INTRAVENOUS",
				"SC":   "SUBCUTANEOUS",
				"SUBQ": "SUBCUTANEOUS",
				"IM":   "INTRAMUSCULAR",
				"INH":  "INHALED",
			}),
		NewCodelist("FREQ", true,
			[]string{"QD", "BID", "TID", "QID", "QW", "PRN", "ONCE"},
			map[string]string{
				"ONCE DAILY":        "QD",
				"DAILY":             "QD",
				"TWICE DAILY":       "BID",
				"THREE TIMES DAILY": "TID",
				"FOUR TIMES DAILY":  "QID",
				"WEEKLY":            "QW",
				"AS NEEDED":         "PRN",
			}),
		NewCodelist("UNIT", true,
			[]string{"MG", "G", "UG", "ML", "L", "MG/ML", "MMHG", "KG", "CM", "BEATS/MIN", "BREATHS/MIN", "C", "%"},
			map[string]string{
				"MILLIGRAM":  "MG",
				"MILLIGRAMS": "MG",
				"GRAM":       "G",
				"MCG":        "UG",
				"MILLILITER": "ML",
			}),
		NewCodelist("VSTESTCD", false,
			[]string{"SYSBP", "DIABP", "PULSE", "RESP", "TEMP", "HEIGHT", "WEIGHT", "BMI", "OXYSAT"},
			map[string]string{
				"SBP":              "SYSBP",
				"DBP":              "DIABP",
				"HR":               "PULSE",
				"HEART RATE":       "PULSE",
				"RR":               "RESP",
				"RESPIRATORY RATE": "RESP",
				"TEMPERATURE":      "TEMP",
				"SPO2":             "OXYSAT",
			}),
		NewCodelist("LBNRIND", false,
			[]string{"NORMAL", "LOW", "HIGH", "ABNORMAL"},
			map[string]string{
				"N":  "NORMAL",
				"L":  "LOW",
				"H":  "HIGH",
				"A":  "ABNORMAL",
				"LL": "LOW",
				"HH": "HIGH",
			}),
		NewCodelist("DSDECOD", true,
			[]string{
				"COMPLETED",
				"ADVERSE EVENT",
				"DEATH",
				"LOST TO FOLLOW-UP",
				"WITHDRAWAL BY SUBJECT",
				"PHYSICIAN DECISION",
				"PROTOCOL DEVIATION",
				"OTHER",
			},
			map[string]string{
				"COMPLETE":  "COMPLETED",
				"WITHDREW":  "WITHDRAWAL BY SUBJECT",
				"WITHDRAWN": "WITHDRAWAL BY SUBJECT",
				"LTFU":      "LOST TO FOLLOW-UP",
				"DIED":      "DEATH",
			}),
		NewCodelist("DSCAT", false,
			[]string{"DISPOSITION EVENT", "PROTOCOL MILESTONE", "OTHER EVENT"},
			nil),
		NewCodelist("POSITION", false,
			[]string{"SITTING", "STANDING", "SUPINE"},
			map[string]string{
				"SEATED":    "SITTING",
				"LYING":     "SUPINE",
				"RECUMBENT": "SUPINE",
			}),
	}
}
