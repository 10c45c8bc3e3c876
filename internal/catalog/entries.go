package catalog

import (
	"regexp"

	"reminder-engine/internal/model"
)

var (
	srcImpfplan = Source{Label: "Impfplan Österreich (Sozialministerium)", URL: "https://www.sozialministerium.gv.at/impfplan"}
	srcECDC     = Source{Label: "ECDC Vaccine Scheduler (EU/EEA)", URL: "https://vaccine-schedule.ecdc.europa.eu/"}
	srcEVIP     = Source{Label: "European Vaccination Information Portal", URL: "https://vaccination-info.europa.eu/en"}
)

func evip(label, path string) Source {
	return Source{Label: "European Vaccination Information Portal (" + label + ")", URL: "https://vaccination-info.europa.eu/en/" + path}
}

func cvx(code, display string) Coding {
	return Coding{System: CVX, Code: code, Display: display}
}

var severeAllergy = []string{"Severe allergic reaction (rare)"}

// defaultEntries is the built-in table. Order matters: the text fallback
// returns the first matching pattern, so e.g. "hepb" resolves to the infant
// combination series before the standalone hepatitis B entry.
func defaultEntries() []Entry {
	return []Entry{
		{
			Key:                    model.FamilyInfant6in1,
			Label:                  "6-in-1 (DTaP-IPV-HepB-Hib) / Pertussis series",
			Short:                  "Combination childhood vaccine that includes pertussis (whooping cough) and other routine protections (6-in-1).",
			ProtectsAgainst:        "Pertussis, diphtheria, tetanus, polio, hepatitis B, and Hib (product-dependent combinations).",
			TypicalUse:             "Routine infant immunisation in many countries.",
			ScheduleNotes:          "Austria (best-effort): 3 doses in infancy (from ~6 weeks; dose 2 ~2 months later; dose 3 ~6 months after dose 2).",
			CommonSideEffects:      []string{"Sore arm", "Fever", "Irritability", "Fatigue"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationRoutine,
			Pattern:                regexp.MustCompile(`(?i)(6\s*[- ]?in\s*[- ]?1|hexavalent|dtap|dta\s*p|acellular\s*pertussis|whooping\s*cough|pertussis|hib|hepb|ipv)`),
			Codings: []Coding{
				cvx("146", "DTaP-HepB-IPV-Hib (hexavalent)"),
				cvx("110", "DTaP-HepB-IPV"),
				cvx("120", "DTaP-Hib-IPV"),
				cvx("130", "DTaP-IPV"),
				cvx("50", "DTaP-Hib"),
				cvx("20", "DTaP"),
			},
			Sources:   []Source{{Label: srcImpfplan.Label, URL: srcImpfplan.URL, Note: "Austria schedule reference"}, srcECDC},
			CostNotes: "Austria: routine infant vaccines are generally part of public programmes; funding/availability may vary by Bundesland and programme year.",
		},
		{
			Key:                    model.FamilyRSVInfant,
			Label:                  "RSV (infant protection - nirsevimab/Beyfortus)",
			Short:                  "Passive protection for infants against RSV, usually offered for the first RSV season (monoclonal antibody, not a traditional vaccine).",
			ProtectsAgainst:        "Severe RSV lower respiratory tract disease in infants.",
			TypicalUse:             "Infants entering their first RSV season; eligibility and timing are seasonal.",
			ScheduleNotes:          "Austria (best-effort): typically a single dose during the RSV season for eligible infants; timing is seasonal.",
			CommonSideEffects:      []string{"Injection-site reactions", "Mild fever"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationVaries,
			Pattern:                regexp.MustCompile(`(?i)(\brsv\b|nirsevimab|beyfortus)`),
			Codings: []Coding{
				cvx("306", "Nirsevimab (0.5 mL)"),
				cvx("307", "Nirsevimab (1 mL)"),
			},
			Sources:   []Source{{Label: srcImpfplan.Label, URL: srcImpfplan.URL, Note: "Austria RSV guidance (seasonal)"}, srcECDC},
			CostNotes: "Austria: for eligible infants, RSV passive immunisation may be offered under a seasonal programme; details vary by season/programme.",
		},
		{
			Key:                    model.FamilyRotavirus,
			Label:                  "Rotavirus",
			Short:                  "Oral vaccine protecting against rotavirus gastroenteritis in infants.",
			ProtectsAgainst:        "Rotavirus infection (diarrhoea/vomiting) in infants.",
			TypicalUse:             "Routine infant vaccination in many countries; product and age window vary.",
			ScheduleNotes:          "Given orally in early infancy; product-specific dose count and maximum ages apply.",
			CommonSideEffects:      []string{"Mild diarrhoea", "Irritability", "Vomiting (mild)"},
			RareSeriousSideEffects: []string{"Intussusception (very rare)"},
			Recommendation:         RecommendationRoutine,
			Pattern:                regexp.MustCompile(`(?i)(rotavirus|rota)`),
			Codings: []Coding{
				cvx("116", "Rotavirus, pentavalent"),
				cvx("119", "Rotavirus, monovalent"),
				cvx("122", "Rotavirus, unspecified formulation"),
			},
			Sources:   []Source{evip("Rotavirus", "disease/rotavirus-infection"), srcImpfplan},
			CostNotes: "Austria: rotavirus vaccination is commonly included in childhood programmes; age windows apply and implementation can vary.",
		},
		{
			Key:                    model.FamilyPneumo,
			Label:                  "Pneumococcal (PCV/PPSV)",
			Short:                  "Protection against pneumococcal disease; used in infancy and for older/risk groups.",
			ProtectsAgainst:        "Pneumococcal infections (e.g., pneumonia and invasive disease).",
			TypicalUse:             "Routine in infancy in many countries; also recommended for older adults and certain risk groups.",
			ScheduleNotes:          "Infant and adult schedules differ by country and product (PCV vs PPSV).",
			CommonSideEffects:      []string{"Sore arm", "Fever", "Fatigue"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationVaries,
			Pattern:                regexp.MustCompile(`(?i)(pneumococcal|pneumo|pcv|ppsv)`),
			Codings: []Coding{
				cvx("133", "Pneumococcal conjugate PCV13"),
				cvx("152", "Pneumococcal conjugate (unspecified)"),
				cvx("215", "PCV15"),
				cvx("216", "PCV20"),
				cvx("33", "PPSV23"),
			},
			Sources:   []Source{evip("Pneumococcal", "disease/pneumococcal-disease"), srcImpfplan, srcECDC},
			CostNotes: "Austria: pneumococcal vaccination is commonly funded for infants; adult/risk-group programmes vary (some may require co-payment).",
		},
		{
			Key:                    model.FamilyMMR,
			Label:                  "Measles (MMR)",
			Short:                  "Protects against measles (often given as MMR: measles, mumps, rubella).",
			ProtectsAgainst:        "Measles (and usually mumps + rubella when given as combined MMR).",
			TypicalUse:             "Routine childhood vaccination in many countries. Adults without evidence of immunity may be advised to receive 2 doses.",
			ScheduleNotes:          "Often a 2-dose series; exact timing depends on local guidance.",
			CommonSideEffects:      []string{"Sore arm", "Mild fever", "Mild rash"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationRoutine,
			Pattern:                regexp.MustCompile(`(?i)(\bmmr\b|measles|mumps|rubella)`),
			Codings:                []Coding{cvx("03", "MMR")},
			Sources:                []Source{evip("MMR", "vaccination/mmr-vaccines"), srcECDC, srcImpfplan},
			CostNotes:              "Austria: MMR is typically included in childhood programmes; catch-up programmes for adults can vary.",
		},
		{
			Key:                    model.FamilyVaricella,
			Label:                  "Varicella (chickenpox)",
			Short:                  "Protection against varicella; often a 2-dose series in childhood.",
			ProtectsAgainst:        "Varicella (chickenpox) and complications.",
			TypicalUse:             "Routine childhood vaccination in many countries; adults without immunity may be offered catch-up.",
			ScheduleNotes:          "Commonly 2 doses; timing depends on local guidance and product (Varicella vs MMRV).",
			CommonSideEffects:      []string{"Sore arm", "Mild fever", "Rash (mild)"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationVaries,
			Pattern:                regexp.MustCompile(`(?i)(varicella|chicken\s*pox|mmrv)`),
			Codings: []Coding{
				cvx("21", "Varicella"),
				cvx("94", "MMRV"),
			},
			Sources:   []Source{evip("Varicella", "disease/varicella-chickenpox"), srcImpfplan},
			CostNotes: "Austria: inclusion/funding in programmes can vary by year; check local programme details.",
		},
		{
			Key:                    model.FamilyHPV,
			Label:                  "HPV",
			Short:                  "Protection against human papillomavirus; prevents several cancers and genital warts.",
			ProtectsAgainst:        "HPV-related cancers (e.g., cervical) and genital warts (type-dependent).",
			TypicalUse:             "Often recommended in early adolescence; catch-up policies vary by country and age.",
			ScheduleNotes:          "Often 2 doses for younger adolescents and 3 doses for older starters; varies by local guidance.",
			CommonSideEffects:      []string{"Sore arm", "Fever (mild)", "Dizziness/fainting (observe after injection)"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationRoutine,
			Pattern:                regexp.MustCompile(`(?i)(\bhpv\b|human\s*papilloma)`),
			Codings: []Coding{
				cvx("165", "HPV, 9-valent"),
				cvx("62", "HPV, 4-valent"),
				cvx("118", "HPV, 2-valent"),
			},
			Sources:   []Source{evip("HPV", "disease/hpv"), srcImpfplan},
			CostNotes: "Austria: HPV is commonly offered via public programmes for certain age groups; catch-up outside the programme may be self-pay or subsidised.",
		},
		{
			Key:                    model.FamilyMeningoACWY,
			Label:                  "Meningococcal ACWY",
			Short:                  "Protection against meningococcal disease caused by serogroups A, C, W, and Y.",
			ProtectsAgainst:        "Invasive meningococcal disease (meningitis, sepsis).",
			TypicalUse:             "Recommended for certain age groups in some countries and for travel/risk-based indications.",
			ScheduleNotes:          "Schedules vary by country, age, and product.",
			CommonSideEffects:      []string{"Sore arm", "Fever (mild)", "Fatigue"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationVaries,
			Pattern:                regexp.MustCompile(`(?i)(meningococcal|meningokokk|\bacwy\b|\bmcvy\b|\bmenacwy\b)`),
			Codings: []Coding{
				cvx("114", "Meningococcal ACWY"),
				cvx("136", "Meningococcal conjugate ACWY"),
			},
			Sources:   []Source{evip("Meningococcal", "disease/meningococcal-disease"), srcECDC, srcImpfplan},
			CostNotes: "Austria: funding depends on programme and age group; check local recommendations and programme coverage.",
		},
		{
			Key:                    model.FamilyMeningoB,
			Label:                  "Meningococcal B",
			Short:                  "Protection against meningococcal serogroup B disease.",
			ProtectsAgainst:        "Invasive meningococcal disease (meningitis, sepsis).",
			TypicalUse:             "Recommended for certain age groups and risk groups in some countries; policies vary.",
			ScheduleNotes:          "Schedules vary by country, age, and product.",
			CommonSideEffects:      []string{"Sore arm", "Fever (mild)", "Fatigue"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationVaries,
			Pattern:                regexp.MustCompile(`(?i)(meningococcal|meningokokk|\bmenb\b|\bmen\s*b\b)`),
			Codings: []Coding{
				cvx("162", "Meningococcal B, recombinant"),
				cvx("163", "Meningococcal B, OMV"),
				cvx("203", "Meningococcal B, unspecified"),
			},
			Sources:   []Source{evip("Meningococcal", "disease/meningococcal-disease"), srcECDC, srcImpfplan},
			CostNotes: "Austria: funding depends on programme and age group; in many settings it can be self-pay or subsidised.",
		},
		{
			Key:                    model.FamilyTetanus,
			Label:                  "Tetanus (often with diphtheria/pertussis)",
			Short:                  "Booster protection against tetanus; often combined (Td/Tdap).",
			ProtectsAgainst:        "Tetanus (often with diphtheria and sometimes pertussis).",
			TypicalUse:             "Routine vaccination; boosters are commonly recommended for ongoing protection, especially after certain injuries.",
			ScheduleNotes:          "Boosters are commonly advised about every 10 years (varies by country and situation).",
			CommonSideEffects:      []string{"Sore arm", "Redness/swelling", "Mild fever", "Fatigue"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationRoutine,
			Pattern:                regexp.MustCompile(`(?i)(tetanus|\btdap\b|\btd\b|diphtheria)`),
			Codings: []Coding{
				cvx("09", "Td (tetanus and diphtheria toxoids)"),
				cvx("113", "Tdap"),
				cvx("115", "Tdap (adolescent/adult)"),
			},
			Sources:   []Source{srcEVIP, srcECDC, srcImpfplan},
			CostNotes: "Austria: boosters may be covered in certain programmes; coverage can vary (injury-related boosters may differ).",
		},
		{
			Key:                    model.FamilyTBE,
			Label:                  "Tick-borne encephalitis (FSME/TBE)",
			Short:                  "Helps prevent tick-borne encephalitis; boosters may be needed.",
			ProtectsAgainst:        "Tick-borne encephalitis (viral infection transmitted by ticks).",
			TypicalUse:             "Risk-based: endemic areas and frequent outdoor exposure.",
			ScheduleNotes:          "Primary series + boosters. Booster interval varies by age/product (often in the 3-5 year range).",
			CommonSideEffects:      []string{"Sore arm", "Headache", "Fatigue", "Mild fever"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationRisk,
			Pattern:                regexp.MustCompile(`(?i)(\bfsme?\b|tick\s*borne\s*encephalitis|\btbe\b)`),
			Codings: []Coding{
				cvx("223", "TBE vaccine, paediatric"),
				cvx("224", "TBE vaccine, adult"),
			},
			Sources: []Source{
				srcImpfplan,
				{Label: "Impfservice Wien (FSME)", URL: "https://impfservice.wien/fsme-zecken-schutzimpfung/"},
				srcECDC,
			},
			CostNotes: "Austria: FSME/TBE is commonly self-pay (sometimes subsidised campaigns); check local offers.",
		},
		{
			Key:                    model.FamilyInfluenza,
			Label:                  "Influenza (flu)",
			Short:                  "Seasonal flu protection; typically repeated each season.",
			ProtectsAgainst:        "Seasonal influenza strains (changes year to year).",
			TypicalUse:             "Often recommended yearly, especially for older adults, chronic conditions, pregnancy, and healthcare workers.",
			ScheduleNotes:          "Typically one dose each flu season (local programmes vary).",
			CommonSideEffects:      []string{"Sore arm", "Mild fever", "Muscle aches", "Fatigue"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationVaries,
			Pattern:                regexp.MustCompile(`(?i)(influenza|\bflu\b)`),
			Codings: []Coding{
				cvx("140", "Influenza, seasonal, injectable, preservative free"),
				cvx("88", "Influenza, unspecified formulation"),
			},
			Sources:   []Source{evip("Influenza", "disease/influenza"), srcECDC, srcImpfplan},
			CostNotes: "Austria: seasonal programmes exist; pricing/coverage can vary by programme and season.",
		},
		{
			Key:                    model.FamilyCOVID,
			Label:                  "COVID-19",
			Short:                  "Protection against COVID-19; booster timing varies.",
			ProtectsAgainst:        "COVID-19 (SARS-CoV-2) and severe disease outcomes.",
			TypicalUse:             "Programmes vary widely by country and risk group; boosters may be offered seasonally.",
			ScheduleNotes:          "Booster timing depends on local guidance, risk, and vaccine product.",
			CommonSideEffects:      []string{"Sore arm", "Fatigue", "Headache", "Fever/chills"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationVaries,
			Pattern:                regexp.MustCompile(`(?i)(covid|sars-?cov-?2|comirnaty|spikevax)`),
			Codings:                []Coding{cvx("500", "SARS-CoV-2 (COVID-19) vaccine, non-US")},
			Sources:                []Source{evip("COVID-19", "disease/covid-19"), srcECDC, srcImpfplan},
			CostNotes:              "Austria: COVID vaccination/boosters are typically organised through national programmes; eligibility changes over time.",
		},
		{
			Key:                    model.FamilyRSVAdult,
			Label:                  "RSV (older adult vaccines)",
			Short:                  "RSV vaccines for older adults; eligibility and recommendations vary.",
			ProtectsAgainst:        "RSV disease in older adults (vaccine products).",
			TypicalUse:             "Often risk/age-based; country programmes vary.",
			ScheduleNotes:          "Typically 1 dose; boosters depend on local guidance/product.",
			CommonSideEffects:      []string{"Sore arm", "Fatigue", "Headache"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationVaries,
			Pattern:                regexp.MustCompile(`(?i)(\brsv\b|arexvy|abrysvo|mresvia)`),
			Codings: []Coding{
				cvx("303", "RSV vaccine, Arexvy"),
				cvx("305", "RSV vaccine, Abrysvo"),
				cvx("326", "RSV vaccine, mRESVIA"),
			},
			Sources:   []Source{srcECDC, srcImpfplan},
			CostNotes: "Austria: adult RSV vaccine availability and funding vary; often self-pay unless covered for risk groups.",
		},
		{
			Key:                    model.FamilyZoster,
			Label:                  "Shingles (zoster)",
			Short:                  "Protection against shingles; commonly recommended for older adults in many countries.",
			ProtectsAgainst:        "Herpes zoster (shingles) and post-herpetic neuralgia.",
			TypicalUse:             "Age/risk-based; policies vary by country.",
			ScheduleNotes:          "Often a 2-dose series for recombinant vaccines; varies by product.",
			CommonSideEffects:      []string{"Sore arm", "Fatigue", "Fever (mild)"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationVaries,
			Pattern:                regexp.MustCompile(`(?i)(zoster|shingles|shingrix)`),
			Codings: []Coding{
				cvx("187", "Zoster recombinant"),
				cvx("121", "Zoster live"),
			},
			Sources:   []Source{evip("Shingles", "disease/shingles"), srcImpfplan},
			CostNotes: "Austria: shingles vaccination is commonly self-pay or subsidised depending on programmes/insurance.",
		},
		{
			Key:                    model.FamilyHepA,
			Label:                  "Hepatitis A",
			Short:                  "Protection against hepatitis A; often travel/risk-based.",
			ProtectsAgainst:        "Hepatitis A infection.",
			TypicalUse:             "Travel and risk-based vaccination; childhood policies vary by country.",
			ScheduleNotes:          "Often 2 doses; timing depends on product.",
			CommonSideEffects:      []string{"Sore arm", "Fatigue"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationRisk,
			Pattern:                regexp.MustCompile(`(?i)(hepatitis\s*a|\bhep\s*a\b)`),
			Codings: []Coding{
				cvx("52", "Hepatitis A, adult"),
				cvx("83", "Hepatitis A, paediatric"),
			},
			Sources:   []Source{evip("Hepatitis A", "disease/hepatitis"), srcImpfplan},
			CostNotes: "Austria: hepatitis A is often travel/risk-based and may be self-pay.",
		},
		{
			Key:                    model.FamilyHepB,
			Label:                  "Hepatitis B",
			Short:                  "Protection against hepatitis B; often included in infant combination vaccines.",
			ProtectsAgainst:        "Hepatitis B infection and chronic liver disease risk.",
			TypicalUse:             "Routine in many countries (often part of combination vaccines) and for risk groups.",
			ScheduleNotes:          "Often given as part of combination vaccines in infancy; catch-up depends on local guidance.",
			CommonSideEffects:      []string{"Sore arm", "Fatigue"},
			RareSeriousSideEffects: severeAllergy,
			Recommendation:         RecommendationRoutine,
			Pattern:                regexp.MustCompile(`(?i)(hepatitis\s*b|\bhep\s*b\b)`),
			Codings: []Coding{
				cvx("08", "Hepatitis B, adolescent or paediatric"),
				cvx("43", "Hepatitis B, adult"),
			},
			Sources:   []Source{evip("Hepatitis B", "disease/hepatitis"), srcImpfplan},
			CostNotes: "Austria: hepatitis B is usually covered as part of routine childhood programmes (often via combination vaccines).",
		},
	}
}
