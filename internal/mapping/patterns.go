package mapping

import (
	"regexp"

	"github.com/clinforge/sdtm/internal/domain"
)

// namePattern binds a column-name regular expression to a target variable
// with a fixed confidence. Tables are priority-ordered: the first matching
// pattern wins for a column, so exact-token patterns must precede looser
// substring and prefix patterns or a generic pattern shadows the specific
// one.
type namePattern struct {
	re         *regexp.Regexp
	target     string
	confidence float64
}

func pat(expr, target string, confidence float64) namePattern {
	return namePattern{re: regexp.MustCompile(`(?i)` + expr), target: target, confidence: confidence}
}

// Identifier spellings shared by every domain. Subject comes first; the
// transformer treats a table without any subject candidate as fatal.
var genericPatterns = []namePattern{
	pat(`^USUBJID$`, "USUBJID", 0.95),
	pat(`^SUBJID$`, "SUBJID", 0.95),
	pat(`^(SUBJECT_?(ID|NO|NUM)?|PT|PTNO|PT_?ID|PATIENT(_?(ID|NO|NUM))?|RANDNO|SCRNUM)$`, "SUBJID", 0.9),
	pat(`^STUDYID$`, "STUDYID", 0.95),
	pat(`^(STUDY(_?(ID|NO|CODE))?|PROTOCOL(_?(ID|NO))?)$`, "STUDYID", 0.9),
	pat(`^SITEID$`, "SITEID", 0.95),
	pat(`^(SITE(_?(ID|NO|CODE))?|CENTER|CENTRE|INVSITE)$`, "SITEID", 0.9),
	pat(`^VISITNUM$`, "VISITNUM", 0.95),
	pat(`^(VISIT_?(NO|NUM|NUMBER))$`, "VISITNUM", 0.85),
	pat(`^VISIT(_?NAME)?$`, "VISIT", 0.8),
}

// Domain-specific spellings. Each table starts with the exact SDTM names,
// then the common EDC and legacy spellings.
var domainPatterns = map[domain.Code][]namePattern{
	domain.DomainDM: {
		pat(`^SEX$`, "SEX", 0.95),
		pat(`^GENDER$`, "SEX", 0.9),
		pat(`^BRTHDTC$`, "BRTHDTC", 0.95),
		pat(`^(DOB|BIRTHDT|BRTHDAT|BIRTH_?DATE|DATE_?OF_?BIRTH)$`, "BRTHDTC", 0.9),
		pat(`^AGE$`, "AGE", 0.95),
		pat(`^AGEU$`, "AGEU", 0.95),
		pat(`^AGE_?UNITS?$`, "AGEU", 0.85),
		pat(`^RACE$`, "RACE", 0.95),
		pat(`^ETHNIC(ITY)?$`, "ETHNIC", 0.9),
		pat(`^COUNTRY$`, "COUNTRY", 0.95),
		pat(`^ARMCD$`, "ARMCD", 0.95),
		pat(`^ARM$`, "ARM", 0.95),
		pat(`^(TREATMENT_?(ARM|GROUP)|TRT_?GRP|TRTGROUP)$`, "ARM", 0.85),
		pat(`^RFSTDTC$`, "RFSTDTC", 0.95),
		pat(`^(FIRST_?DOSE(_?DATE)?|ENROLL(MENT)?_?(DATE|DT)|RANDDT)$`, "RFSTDTC", 0.8),
		pat(`^RFENDTC$`, "RFENDTC", 0.95),
		pat(`^(LAST_?DOSE(_?DATE)?|COMPLETION_?DATE)$`, "RFENDTC", 0.8),
		pat(`^DTHDTC$`, "DTHDTC", 0.95),
		pat(`^(DEATH_?(DATE|DT)|DTHDT)$`, "DTHDTC", 0.9),
		pat(`^DTHFL$`, "DTHFL", 0.95),
		pat(`^(DEATH_?(FLAG|FL)|DIED)$`, "DTHFL", 0.85),
	},
	domain.DomainAE: {
		pat(`^AETERM$`, "AETERM", 0.95),
		pat(`^(AE_?TERM|ADVERSE_?EVENT|EVENT_?TERM|AE_?VERBATIM|AEVERBATIM)$`, "AETERM", 0.9),
		pat(`^AEDECOD$`, "AEDECOD", 0.95),
		pat(`^(PREFERRED_?TERM|PT_?NAME|MEDDRA_?PT)$`, "AEDECOD", 0.85),
		pat(`^AEBODSYS$`, "AEBODSYS", 0.95),
		pat(`^(BODY_?SYSTEM|SOC|MEDDRA_?SOC)$`, "AEBODSYS", 0.85),
		pat(`^AESTDTC$`, "AESTDTC", 0.95),
		pat(`^(AE_?ST(ART)?_?(DATE|DT)|AESTDT|ONSET(_?(DATE|DT))?|START_?DATE)$`, "AESTDTC", 0.9),
		pat(`^AEENDTC$`, "AEENDTC", 0.95),
		pat(`^(AE_?END_?(DATE|DT)|AEENDT|RESOLV(ED)?_?(DATE|DT)|STOP_?DATE|END_?DATE)$`, "AEENDTC", 0.9),
		pat(`^AESEV$`, "AESEV", 0.95),
		pat(`^(SEVERITY|INTENSITY)$`, "AESEV", 0.9),
		pat(`^AESER$`, "AESER", 0.95),
		pat(`^SERIOUS(_?(FLAG|FL|YN))?$`, "AESER", 0.9),
		pat(`^AEREL$`, "AEREL", 0.95),
		pat(`^(CAUSALITY|RELATIONSHIP|RELATED(NESS)?|DRUG_?RELATED)$`, "AEREL", 0.85),
		pat(`^AEOUT$`, "AEOUT", 0.95),
		pat(`^OUTCOME$`, "AEOUT", 0.9),
		pat(`^AEACN$`, "AEACN", 0.95),
		pat(`^ACTION(_?TAKEN)?$`, "AEACN", 0.85),
		pat(`^AETOXGR$`, "AETOXGR", 0.95),
		pat(`^(TOX(ICITY)?_?GRADE|CTC_?GRADE|GRADE)$`, "AETOXGR", 0.8),
		pat(`^AESDTH$`, "AESDTH", 0.95),
		pat(`^AESHOSP$`, "AESHOSP", 0.95),
		pat(`^AESLIFE$`, "AESLIFE", 0.95),
	},
	domain.DomainVS: {
		pat(`^VSTESTCD$`, "VSTESTCD", 0.95),
		pat(`^(TEST_?CODE|PARAMCD)$`, "VSTESTCD", 0.85),
		pat(`^VSTEST$`, "VSTEST", 0.95),
		pat(`^(TEST(_?NAME)?|PARAM(ETER)?)$`, "VSTEST", 0.8),
		pat(`^VSORRES$`, "VSORRES", 0.95),
		pat(`^(RESULT|VALUE|MEASUREMENT)$`, "VSORRES", 0.8),
		pat(`^VSORRESU$`, "VSORRESU", 0.95),
		pat(`^UNITS?$`, "VSORRESU", 0.8),
		pat(`^VSPOS$`, "VSPOS", 0.95),
		pat(`^POSITION$`, "VSPOS", 0.85),
		pat(`^VSDTC$`, "VSDTC", 0.95),
		pat(`^(VS_?(DATE|DT)|MEASURE(MENT)?_?(DATE|DT)|ASSESS(MENT)?_?(DATE|DT)|COLLECTION_?DATE)$`, "VSDTC", 0.85),
	},
	domain.DomainLB: {
		pat(`^LBTESTCD$`, "LBTESTCD", 0.95),
		pat(`^(TEST_?CODE|PARAMCD|LAB_?CODE)$`, "LBTESTCD", 0.85),
		pat(`^LBTEST$`, "LBTEST", 0.95),
		pat(`^(TEST(_?NAME)?|PARAM(ETER)?|LAB_?TEST|ANALYTE)$`, "LBTEST", 0.8),
		pat(`^LBCAT$`, "LBCAT", 0.95),
		pat(`^(CATEGORY|PANEL)$`, "LBCAT", 0.8),
		pat(`^LBORRES$`, "LBORRES", 0.95),
		pat(`^(RESULT|VALUE|LAB_?RESULT)$`, "LBORRES", 0.8),
		pat(`^LBORRESU$`, "LBORRESU", 0.95),
		pat(`^UNITS?$`, "LBORRESU", 0.8),
		pat(`^LBORNRLO$`, "LBORNRLO", 0.95),
		pat(`^(NORMAL?_?LOW|LOW(ER)?_?LIMIT|REF_?LOW|LLN)$`, "LBORNRLO", 0.85),
		pat(`^LBORNRHI$`, "LBORNRHI", 0.95),
		pat(`^(NORMAL?_?HIGH|UPPER_?LIMIT|HIGH_?LIMIT|REF_?HIGH|ULN)$`, "LBORNRHI", 0.85),
		pat(`^LBNRIND$`, "LBNRIND", 0.95),
		pat(`^(ABNORMAL_?(FLAG|FL)|NORMAL_?FLAG|REF(ERENCE)?_?(RANGE_?)?IND(ICATOR)?)$`, "LBNRIND", 0.85),
		pat(`^LBDTC$`, "LBDTC", 0.95),
		pat(`^(LAB_?(DATE|DT)|COLLECTION_?(DATE|DT)|SAMPLE_?(DATE|DT)|DRAW_?DATE)$`, "LBDTC", 0.85),
	},
	domain.DomainCM: {
		pat(`^CMTRT$`, "CMTRT", 0.95),
		pat(`^(MEDICATION(_?NAME)?|DRUG_?NAME|CONMED|CON_?MED|MED_?NAME)$`, "CMTRT", 0.9),
		pat(`^CMDECOD$`, "CMDECOD", 0.95),
		pat(`^(WHO_?DRUG|PREFERRED_?NAME|GENERIC_?NAME)$`, "CMDECOD", 0.8),
		pat(`^CMINDC$`, "CMINDC", 0.95),
		pat(`^(INDICATION|REASON(_?FOR_?USE)?)$`, "CMINDC", 0.85),
		pat(`^CMDOSE$`, "CMDOSE", 0.95),
		pat(`^DOSE(_?AMOUNT)?$`, "CMDOSE", 0.85),
		pat(`^CMDOSU$`, "CMDOSU", 0.95),
		pat(`^(DOSE_?UNITS?|UNITS?)$`, "CMDOSU", 0.8),
		pat(`^CMROUTE$`, "CMROUTE", 0.95),
		pat(`^ROUTE$`, "CMROUTE", 0.9),
		pat(`^CMDOSFRQ$`, "CMDOSFRQ", 0.95),
		pat(`^FREQ(UENCY)?$`, "CMDOSFRQ", 0.85),
		pat(`^CMSTDTC$`, "CMSTDTC", 0.95),
		pat(`^(CM_?START_?(DATE|DT)|START_?DATE|MED_?START)$`, "CMSTDTC", 0.85),
		pat(`^CMENDTC$`, "CMENDTC", 0.95),
		pat(`^(CM_?END_?(DATE|DT)|END_?DATE|STOP_?DATE|MED_?END)$`, "CMENDTC", 0.85),
		pat(`^CMONGO$`, "CMONGO", 0.95),
		pat(`^ONGOING$`, "CMONGO", 0.85),
	},
	domain.DomainEX: {
		pat(`^EXTRT$`, "EXTRT", 0.95),
		pat(`^(TREATMENT|STUDY_?DRUG|STUDY_?MED(ICATION)?|IMP)$`, "EXTRT", 0.85),
		pat(`^EXDOSE$`, "EXDOSE", 0.95),
		pat(`^DOSE(_?AMOUNT)?$`, "EXDOSE", 0.85),
		pat(`^EXDOSU$`, "EXDOSU", 0.95),
		pat(`^(DOSE_?UNITS?|UNITS?)$`, "EXDOSU", 0.8),
		pat(`^EXDOSFRM$`, "EXDOSFRM", 0.95),
		pat(`^(DOSE_?FORM|FORMULATION)$`, "EXDOSFRM", 0.85),
		pat(`^EXROUTE$`, "EXROUTE", 0.95),
		pat(`^ROUTE$`, "EXROUTE", 0.9),
		pat(`^EXSTDTC$`, "EXSTDTC", 0.95),
		pat(`^(EX_?START_?(DATE|DT)|DOSE_?START|START_?DATE|FIRST_?DOSE)$`, "EXSTDTC", 0.85),
		pat(`^EXENDTC$`, "EXENDTC", 0.95),
		pat(`^(EX_?END_?(DATE|DT)|DOSE_?END|END_?DATE|STOP_?DATE|LAST_?DOSE)$`, "EXENDTC", 0.85),
	},
	domain.DomainMH: {
		pat(`^MHTERM$`, "MHTERM", 0.95),
		pat(`^(HISTORY_?TERM|CONDITION|DIAGNOSIS|MED(ICAL)?_?HIST(ORY)?)$`, "MHTERM", 0.85),
		pat(`^MHDECOD$`, "MHDECOD", 0.95),
		pat(`^(PREFERRED_?TERM|MEDDRA_?PT)$`, "MHDECOD", 0.8),
		pat(`^MHCAT$`, "MHCAT", 0.95),
		pat(`^CATEGORY$`, "MHCAT", 0.8),
		pat(`^MHBODSYS$`, "MHBODSYS", 0.95),
		pat(`^(BODY_?SYSTEM|SOC)$`, "MHBODSYS", 0.8),
		pat(`^MHSTDTC$`, "MHSTDTC", 0.95),
		pat(`^(ONSET(_?(DATE|DT))?|START_?DATE|DIAG(NOSIS)?_?DATE)$`, "MHSTDTC", 0.85),
		pat(`^MHENDTC$`, "MHENDTC", 0.95),
		pat(`^(RESOLV(ED)?_?(DATE|DT)|END_?DATE|STOP_?DATE)$`, "MHENDTC", 0.85),
		pat(`^MHONGO$`, "MHONGO", 0.95),
		pat(`^ONGOING$`, "MHONGO", 0.85),
	},
	domain.DomainDS: {
		pat(`^DSTERM$`, "DSTERM", 0.95),
		pat(`^(DISPOSITION(_?TERM)?|DISCONT(INUATION)?_?REASON|REASON)$`, "DSTERM", 0.8),
		pat(`^DSDECOD$`, "DSDECOD", 0.95),
		pat(`^(STATUS|COMPLETION_?STATUS)$`, "DSDECOD", 0.75),
		pat(`^DSCAT$`, "DSCAT", 0.95),
		pat(`^CATEGORY$`, "DSCAT", 0.8),
		pat(`^DSSTDTC$`, "DSSTDTC", 0.95),
		pat(`^(DISPOSITION_?(DATE|DT)|DISCONT(INUATION)?_?(DATE|DT)|COMPLETION_?(DATE|DT)|END_?OF_?STUDY_?DATE)$`, "DSSTDTC", 0.85),
	},
}

// patternsFor returns the priority-ordered pattern table for a domain:
// generic identifier patterns first, then the domain-specific table.
func patternsFor(code domain.Code) []namePattern {
	patterns := make([]namePattern, 0, len(genericPatterns)+len(domainPatterns[code]))
	patterns = append(patterns, genericPatterns...)
	patterns = append(patterns, domainPatterns[code]...)
	return patterns
}
