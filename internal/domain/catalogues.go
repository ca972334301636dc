package domain

// Static domain catalogues. These model the SDTM variable sets the engine
// can target. Only the variables the transformation and validation layers
// act on are listed; permissible variables may be extended without touching
// the pipeline code.

var catalogues = []Catalogue{
	{
		Domain:              DomainDM,
		Label:               "Demographics",
		OneRecordPerSubject: true,
		Variables: []Variable{
			{Name: "STUDYID", Label: "Study Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 20},
			{Name: "DOMAIN", Label: "Domain Abbreviation", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 2},
			{Name: "USUBJID", Label: "Unique Subject Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 40},
			{Name: "SUBJID", Label: "Subject Identifier for the Study", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 20},
			{Name: "SITEID", Label: "Study Site Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 10},
			{Name: "SEX", Label: "Sex", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleQualifier, Codelist: "SEX", MaxLength: 2},
			{Name: "ARMCD", Label: "Planned Arm Code", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleQualifier, MaxLength: 20},
			{Name: "ARM", Label: "Description of Planned Arm", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleQualifier, MaxLength: 200},
			{Name: "COUNTRY", Label: "Country", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleQualifier, MaxLength: 3},
			{Name: "RFSTDTC", Label: "Subject Reference Start Date/Time", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "RFENDTC", Label: "Subject Reference End Date/Time", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "BRTHDTC", Label: "Date/Time of Birth", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "AGE", Label: "Age", Kind: KindNumeric, Requirement: RequirementExpected, Role: RoleQualifier},
			{Name: "AGEU", Label: "Age Units", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "AGEU", MaxLength: 10},
			{Name: "RACE", Label: "Race", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "RACE", MaxLength: 60},
			{Name: "ETHNIC", Label: "Ethnicity", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "ETHNIC", MaxLength: 60},
			{Name: "DTHDTC", Label: "Date/Time of Death", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "DTHFL", Label: "Subject Death Flag", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "NY", MaxLength: 2},
		},
	},
	{
		Domain: DomainAE,
		Label:  "Adverse Events",
		Variables: []Variable{
			{Name: "STUDYID", Label: "Study Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 20},
			{Name: "DOMAIN", Label: "Domain Abbreviation", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 2},
			{Name: "USUBJID", Label: "Unique Subject Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 40},
			{Name: "AESEQ", Label: "Sequence Number", Kind: KindNumeric, Requirement: RequirementRequired, Role: RoleIdentifier},
			{Name: "AETERM", Label: "Reported Term for the Adverse Event", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleTopic, MaxLength: 200},
			{Name: "AEDECOD", Label: "Dictionary-Derived Term", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 200},
			{Name: "AEBODSYS", Label: "Body System or Organ Class", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 200},
			{Name: "AESEV", Label: "Severity/Intensity", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "AESEV", MaxLength: 20},
			{Name: "AESER", Label: "Serious Event", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "NY", MaxLength: 2},
			{Name: "AEREL", Label: "Causality", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "AEREL", MaxLength: 40},
			{Name: "AEOUT", Label: "Outcome of Adverse Event", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "AEOUT", MaxLength: 60},
			{Name: "AEACN", Label: "Action Taken with Study Treatment", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "AEACN", MaxLength: 60},
			{Name: "AESTDTC", Label: "Start Date/Time of Adverse Event", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "AEENDTC", Label: "End Date/Time of Adverse Event", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "AETOXGR", Label: "Standard Toxicity Grade", Kind: KindCharacter, Requirement: RequirementPermissible, Role: RoleQualifier, Codelist: "TOXGR", MaxLength: 2},
			{Name: "AESDTH", Label: "Results in Death", Kind: KindCharacter, Requirement: RequirementPermissible, Role: RoleQualifier, Codelist: "NY", MaxLength: 2},
			{Name: "AESHOSP", Label: "Requires or Prolongs Hospitalization", Kind: KindCharacter, Requirement: RequirementPermissible, Role: RoleQualifier, Codelist: "NY", MaxLength: 2},
			{Name: "AESLIFE", Label: "Is Life Threatening", Kind: KindCharacter, Requirement: RequirementPermissible, Role: RoleQualifier, Codelist: "NY", MaxLength: 2},
		},
	},
	{
		Domain: DomainVS,
		Label:  "Vital Signs",
		Variables: []Variable{
			{Name: "STUDYID", Label: "Study Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 20},
			{Name: "DOMAIN", Label: "Domain Abbreviation", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 2},
			{Name: "USUBJID", Label: "Unique Subject Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 40},
			{Name: "VSSEQ", Label: "Sequence Number", Kind: KindNumeric, Requirement: RequirementRequired, Role: RoleIdentifier},
			{Name: "VSTESTCD", Label: "Vital Signs Test Short Name", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleTopic, Codelist: "VSTESTCD", MaxLength: 8},
			{Name: "VSTEST", Label: "Vital Signs Test Name", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleQualifier, MaxLength: 40},
			{Name: "VSORRES", Label: "Result or Finding in Original Units", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 40},
			{Name: "VSORRESU", Label: "Original Units", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 20},
			{Name: "VSSTRESC", Label: "Character Result/Finding in Std Format", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 40},
			{Name: "VSSTRESN", Label: "Numeric Result/Finding in Standard Units", Kind: KindNumeric, Requirement: RequirementExpected, Role: RoleQualifier},
			{Name: "VSSTRESU", Label: "Standard Units", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 20},
			{Name: "VISITNUM", Label: "Visit Number", Kind: KindNumeric, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "VISIT", Label: "Visit Name", Kind: KindCharacter, Requirement: RequirementPermissible, Role: RoleTiming, MaxLength: 60},
			{Name: "VSDTC", Label: "Date/Time of Measurements", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "VSPOS", Label: "Vital Signs Position of Subject", Kind: KindCharacter, Requirement: RequirementPermissible, Role: RoleQualifier, Codelist: "POSITION", MaxLength: 20},
		},
	},
	{
		Domain: DomainLB,
		Label:  "Laboratory Test Results",
		Variables: []Variable{
			{Name: "STUDYID", Label: "Study Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 20},
			{Name: "DOMAIN", Label: "Domain Abbreviation", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 2},
			{Name: "USUBJID", Label: "Unique Subject Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 40},
			{Name: "LBSEQ", Label: "Sequence Number", Kind: KindNumeric, Requirement: RequirementRequired, Role: RoleIdentifier},
			{Name: "LBTESTCD", Label: "Lab Test or Examination Short Name", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleTopic, MaxLength: 8},
			{Name: "LBTEST", Label: "Lab Test or Examination Name", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleQualifier, MaxLength: 40},
			{Name: "LBCAT", Label: "Category for Lab Test", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 40},
			{Name: "LBORRES", Label: "Result or Finding in Original Units", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 40},
			{Name: "LBORRESU", Label: "Original Units", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 20},
			{Name: "LBORNRLO", Label: "Reference Range Lower Limit-Orig Unit", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 20},
			{Name: "LBORNRHI", Label: "Reference Range Upper Limit-Orig Unit", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 20},
			{Name: "LBSTRESC", Label: "Character Result/Finding in Std Format", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 40},
			{Name: "LBSTRESN", Label: "Numeric Result/Finding in Standard Units", Kind: KindNumeric, Requirement: RequirementExpected, Role: RoleQualifier},
			{Name: "LBSTRESU", Label: "Standard Units", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 20},
			{Name: "LBNRIND", Label: "Reference Range Indicator", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "LBNRIND", MaxLength: 20},
			{Name: "VISITNUM", Label: "Visit Number", Kind: KindNumeric, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "LBDTC", Label: "Date/Time of Specimen Collection", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
		},
	},
	{
		Domain: DomainCM,
		Label:  "Concomitant Medications",
		Variables: []Variable{
			{Name: "STUDYID", Label: "Study Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 20},
			{Name: "DOMAIN", Label: "Domain Abbreviation", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 2},
			{Name: "USUBJID", Label: "Unique Subject Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 40},
			{Name: "CMSEQ", Label: "Sequence Number", Kind: KindNumeric, Requirement: RequirementRequired, Role: RoleIdentifier},
			{Name: "CMTRT", Label: "Reported Name of Drug, Med, or Therapy", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleTopic, MaxLength: 200},
			{Name: "CMDECOD", Label: "Standardized Medication Name", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 200},
			{Name: "CMINDC", Label: "Indication", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 200},
			{Name: "CMDOSE", Label: "Dose per Administration", Kind: KindNumeric, Requirement: RequirementExpected, Role: RoleQualifier},
			{Name: "CMDOSU", Label: "Dose Units", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "UNIT", MaxLength: 20},
			{Name: "CMROUTE", Label: "Route of Administration", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "ROUTE", MaxLength: 40},
			{Name: "CMDOSFRQ", Label: "Dosing Frequency per Interval", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "FREQ", MaxLength: 20},
			{Name: "CMSTDTC", Label: "Start Date/Time of Medication", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "CMENDTC", Label: "End Date/Time of Medication", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "CMONGO", Label: "Ongoing Medication", Kind: KindCharacter, Requirement: RequirementPermissible, Role: RoleQualifier, Codelist: "NY", MaxLength: 2},
		},
	},
	{
		Domain: DomainEX,
		Label:  "Exposure",
		Variables: []Variable{
			{Name: "STUDYID", Label: "Study Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 20},
			{Name: "DOMAIN", Label: "Domain Abbreviation", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 2},
			{Name: "USUBJID", Label: "Unique Subject Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 40},
			{Name: "EXSEQ", Label: "Sequence Number", Kind: KindNumeric, Requirement: RequirementRequired, Role: RoleIdentifier},
			{Name: "EXTRT", Label: "Name of Treatment", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleTopic, MaxLength: 200},
			{Name: "EXDOSE", Label: "Dose", Kind: KindNumeric, Requirement: RequirementExpected, Role: RoleQualifier},
			{Name: "EXDOSU", Label: "Dose Units", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "UNIT", MaxLength: 20},
			{Name: "EXDOSFRM", Label: "Dose Form", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 40},
			{Name: "EXROUTE", Label: "Route of Administration", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "ROUTE", MaxLength: 40},
			{Name: "EXSTDTC", Label: "Start Date/Time of Treatment", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "EXENDTC", Label: "End Date/Time of Treatment", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
		},
	},
	{
		Domain: DomainMH,
		Label:  "Medical History",
		Variables: []Variable{
			{Name: "STUDYID", Label: "Study Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 20},
			{Name: "DOMAIN", Label: "Domain Abbreviation", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 2},
			{Name: "USUBJID", Label: "Unique Subject Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 40},
			{Name: "MHSEQ", Label: "Sequence Number", Kind: KindNumeric, Requirement: RequirementRequired, Role: RoleIdentifier},
			{Name: "MHTERM", Label: "Reported Term for the Medical History", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleTopic, MaxLength: 200},
			{Name: "MHDECOD", Label: "Dictionary-Derived Term", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 200},
			{Name: "MHCAT", Label: "Category for Medical History", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 40},
			{Name: "MHBODSYS", Label: "Body System or Organ Class", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, MaxLength: 200},
			{Name: "MHSTDTC", Label: "Start Date/Time of Medical History Event", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "MHENDTC", Label: "End Date/Time of Medical History Event", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
			{Name: "MHONGO", Label: "Ongoing Event", Kind: KindCharacter, Requirement: RequirementPermissible, Role: RoleQualifier, Codelist: "NY", MaxLength: 2},
		},
	},
	{
		Domain: DomainDS,
		Label:  "Disposition",
		Variables: []Variable{
			{Name: "STUDYID", Label: "Study Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 20},
			{Name: "DOMAIN", Label: "Domain Abbreviation", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 2},
			{Name: "USUBJID", Label: "Unique Subject Identifier", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleIdentifier, MaxLength: 40},
			{Name: "DSSEQ", Label: "Sequence Number", Kind: KindNumeric, Requirement: RequirementRequired, Role: RoleIdentifier},
			{Name: "DSTERM", Label: "Reported Term for the Disposition Event", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleTopic, MaxLength: 200},
			{Name: "DSDECOD", Label: "Standardized Disposition Term", Kind: KindCharacter, Requirement: RequirementRequired, Role: RoleQualifier, Codelist: "DSDECOD", MaxLength: 60},
			{Name: "DSCAT", Label: "Category for Disposition Event", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleQualifier, Codelist: "DSCAT", MaxLength: 40},
			{Name: "DSSTDTC", Label: "Start Date/Time of Disposition Event", Kind: KindCharacter, Requirement: RequirementExpected, Role: RoleTiming},
		},
	},
}

// CatalogueFor returns the catalogue registered for the given domain code.
func CatalogueFor(code Code) (Catalogue, bool) {
	for _, c := range catalogues {
		if c.Domain == code {
			return c, true
		}
	}
	return Catalogue{}, false
}

// Catalogues returns all registered catalogues in a defensive copy.
func Catalogues() []Catalogue {
	out := make([]Catalogue, len(catalogues))
	copy(out, catalogues)
	return out
}

// SupportedDomains lists the registered domain codes in registry order.
func SupportedDomains() []Code {
	codes := make([]Code, 0, len(catalogues))
	for _, c := range catalogues {
		codes = append(codes, c.Domain)
	}
	return codes
}
