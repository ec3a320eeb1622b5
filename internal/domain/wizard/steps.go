package wizard

// Field describes one form input of a wizard step: where it lands in the
// stored sub-record, whether the step can be submitted without it, and
// whether its "true"/"false" string value is normalized to a real boolean.
type Field struct {
	Name     string
	Path     string // dotted location in the sub-record; empty means top-level under Name
	Required bool
	Bool     bool
}

func req(name string) Field             { return Field{Name: name, Required: true} }
func reqAt(name, path string) Field     { return Field{Name: name, Path: path, Required: true} }
func flag(name string) Field            { return Field{Name: name, Bool: true} }
func flagAt(name, path string) Field    { return Field{Name: name, Path: path, Bool: true} }
func opt(name string) Field             { return Field{Name: name} }

// Step binds a wizard page to its URL slug, view template and the schema of
// the sub-record it writes.
type Step struct {
	Slug    string // URL slug: GET/POST /add-<slug>/:patientId
	View    string // template name
	Section string // sub-record key under the patient
	Fields  []Field
}

// FormPath returns the step's URL for the given patient id.
func (s Step) FormPath(patientID string) string {
	return "/add-" + s.Slug + "/" + patientID
}

// SuccessPath is where the terminal step redirects to.
func SuccessPath(patientID string) string {
	return "/partograph-success/" + patientID
}

// Steps is the fixed linear order of the intake wizard after registration.
// "Next step" is a pure function of position in this table; no step state
// is persisted anywhere.
var Steps = []Step{
	{
		Slug:    "healthcare-facility",
		View:    "healthcare-facility",
		Section: "healthcareFacility",
		Fields: []Field{
			req("registrationDate"),
			req("mvcNumber"),
			req("doctorNurse"),
			req("insuranceNumber"),
			reqAt("facilityName", "facilityDetails.facilityName"),
			reqAt("facilityBranch", "facilityDetails.facilityBranch"),
			reqAt("facilityStreet", "facilityDetails.facilityAddress.street"),
			reqAt("facilityPostalCode", "facilityDetails.facilityAddress.postalCode"),
			reqAt("facilityCity", "facilityDetails.facilityAddress.city"),
		},
	},
	{
		Slug:    "medical-history",
		View:    "medical-history",
		Section: "medicalHistory",
		Fields: []Field{
			flag("heartDisease"),
			flag("thrombosis"),
			flag("thyroidDisease"),
			flag("lupusSle"),
			flag("diabetes"),
			flag("epilepsy"),
			flag("psychiatricDisease"),
			flag("urinaryTractInfections"),
			flag("kidneyDisease"),
			flag("gonorrhea"),
			flag("syphilis"),
			req("familyHereditaryDiseases"),
			flagAt("medicationAllergies", "allergies.medicationAllergies"),
			reqAt("otherAllergies", "allergies.otherAllergies"),
			flagAt("smoking", "riskFactors.smoking"),
			flagAt("alcoholUse", "riskFactors.alcoholUse"),
			flagAt("drugUse", "riskFactors.drugUse"),
		},
	},
	{
		Slug:    "current-pregnancy",
		View:    "current-pregnancy",
		Section: "currentPregnancy",
		Fields: []Field{
			req("lastMenstruation"),
			flag("positivePregnancyTest"),
			flag("stoppedContraceptive"),
			flag("iudRemoved"),
			reqAt("dueDateLastMenstrualPeriod", "estimatedDueDates.dueDateLastMenstrualPeriod"),
			reqAt("ultrasoundDueDate", "estimatedDueDates.ultrasoundDueDate"),
			req("weeksPregnant"),
			flag("ultrasoundScheduled"),
		},
	},
	{
		Slug:    "social-living-conditions",
		View:    "social-living-conditions",
		Section: "socialLivingConditions",
		Fields: []Field{
			req("familySituation"),
			req("profession"),
			req("workingType"),
			req("job"),
			req("educationLevel"),
			req("modeOfTransport"),
			// "smoking" is free text here (frequency), unlike the boolean
			// risk-factor flag in the medical-history step.
			req("smoking"),
			flag("snus"),
		},
	},
	{
		Slug:    "health-examination",
		View:    "health-examination",
		Section: "healthExamination",
		Fields: []Field{
			req("heightCm"),
			req("weightKg"),
			req("bmi"),
			reqAt("systolic", "bloodPressure.systolic"),
			reqAt("diastolic", "bloodPressure.diastolic"),
			req("fundalHeightCm"),
			req("fetalHeartbeat"),
			req("bloodGlucose"),
			req("urineProtein"),
			req("urineGlucose"),
		},
	},
	{
		Slug:    "lifestyle-habits",
		View:    "lifestyle-habits",
		Section: "lifestyleHabits",
		Fields: []Field{
			reqAt("cigarettesPerDay", "smoking.cigarettesPerDay"),
			flagAt("snusBeforePregnancy", "smoking.snusBeforePregnancy"),
			reqAt("quitSmokingDays", "smoking.quitSmokingDays"),
			flagAt("snusAtRegistration", "smoking.snusAtRegistration"),
			reqAt("alcoholBeforePregnancy", "alcoholUse.beforePregnancy"),
			reqAt("alcoholDuringPregnancy", "alcoholUse.duringPregnancy"),
			reqAt("auditScore", "alcoholUse.auditScore"),
			reqAt("physicalActivityBeforePregnancy", "physicalActivity.beforePregnancy"),
			reqAt("physicalActivityDuringPregnancy", "physicalActivity.duringPregnancy"),
		},
	},
	{
		Slug:    "mental-health-support",
		View:    "mental-health-support",
		Section: "mentalHealthSupport",
		Fields: []Field{
			flagAt("previousEpisodes", "mentalHealthScreening.previousEpisodes"),
			flagAt("currentEpisodes", "mentalHealthScreening.currentEpisodes"),
			reqAt("stressLevelBefore", "stressLevels.beforePregnancy"),
			reqAt("currentStressLevel", "stressLevels.currentStressLevel"),
			flagAt("supportAvailable", "supportFromRelatives.supportAvailable"),
			reqAt("livingSituationSupport", "supportFromRelatives.livingSituation"),
		},
	},
	{
		Slug:    "previous-pregnancies",
		View:    "previous-pregnancies",
		Section: "previousPregnancies",
		Fields: []Field{
			req("numberOfDeliveries"),
			req("pregnancyYear"),
			flag("abortion"),
			flag("miscarriage"),
			flag("childrenBornAlive"),
			opt("deliveryType"),
			reqAt("birthDate", "childBirthDetails.birthDate"),
			reqAt("gender", "childBirthDetails.gender"),
			reqAt("birthWeight", "childBirthDetails.birthWeight"),
		},
	},
	{
		Slug:    "medications-supplements",
		View:    "medications-supplements",
		Section: "medicationsSupplements",
		Fields: []Field{
			reqAt("medicationName", "medications.name"),
			reqAt("medicationDosage", "medications.dosage"),
			reqAt("medicationStartDate", "medications.startDate"),
			reqAt("indication", "medications.indication"),
			reqAt("supplementName", "supplements.name"),
			reqAt("supplementDosage", "supplements.dosage"),
			reqAt("supplementStartDate", "supplements.startDate"),
		},
	},
	{
		Slug:    "laboratory-results",
		View:    "laboratory-results",
		Section: "laboratoryResults",
		Fields: []Field{
			reqAt("hemoglobin", "bloodTests.hemoglobin"),
			reqAt("bloodType", "bloodTests.bloodType"),
			reqAt("hivStatus", "bloodTests.hivStatus"),
			reqAt("syphilisStatus", "bloodTests.syphilisStatus"),
			reqAt("proteinLevel", "urinalysis.proteinLevel"),
			reqAt("glucoseLevel", "urinalysis.glucoseLevel"),
		},
	},
	{
		Slug:    "care-plan",
		View:    "care-plan",
		Section: "carePlan",
		Fields: []Field{
			reqAt("appointmentDate", "appointmentDetails.appointmentDate"),
			reqAt("appointmentReason", "appointmentDetails.appointmentReason"),
			reqAt("movementsFrequency", "fetalActivity.movementsFrequency"),
			reqAt("fetalPosition", "fetalActivity.fetalPosition"),
			req("followUpNotes"),
		},
	},
	{
		Slug:    "midwife-notes",
		View:    "midwife-notes",
		Section: "midwifeNotes",
		Fields: []Field{
			req("noteDate"),
			req("noteTime"),
			req("noteType"),
			reqAt("generalWellbeing", "summary.generalWellbeing"),
			reqAt("bloodPressureStatus", "summary.bloodPressureStatus"),
			reqAt("fetalMovements", "summary.fetalMovements"),
			reqAt("contractionsStatus", "summary.contractionsStatus"),
			reqAt("medicationsGiven", "summary.medicationsGiven"),
			reqAt("activityStatus", "summary.activityStatus"),
			reqAt("nextSteps", "plan.nextSteps"),
			reqAt("expectedDeliveryType", "plan.expectedDeliveryType"),
			reqAt("deliveryLikelihood", "plan.deliveryLikelihood"),
			reqAt("monitoringPlan", "plan.monitoringPlan"),
		},
	},
	{
		Slug:    "labor-delivery",
		View:    "labor-delivery",
		Section: "laborDelivery",
		Fields: []Field{
			req("deliveryDate"),
			req("deliveryType"),
			req("babySex"),
			req("gestationalAge"),
			req("birthWeight"),
			req("birthLength"),
			req("headCircumference"),
			reqAt("apgar1min", "apgarScore.apgar1min"),
			reqAt("apgar5min", "apgarScore.apgar5min"),
			reqAt("apgar10min", "apgarScore.apgar10min"),
			reqAt("babyStatus", "postnatalObservation.babyStatus"),
		},
	},
	{
		Slug:    "partograph",
		View:    "partograph",
		Section: "partograph",
		Fields: []Field{
			reqAt("laborTime", "laborProgression.laborTime"),
			reqAt("cervicalDilation", "laborProgression.cervicalDilation"),
			reqAt("fetalDescent", "laborProgression.fetalDescent"),
			reqAt("contractionFrequency", "contractions.contractionFrequency"),
			reqAt("contractionIntensity", "contractions.contractionIntensity"),
			reqAt("heartRateTime", "fetalHeartRate.heartRateTime"),
			reqAt("heartRateBPM", "fetalHeartRate.heartRateBPM"),
			reqAt("pulseTime", "maternalPulse.pulseTime"),
			reqAt("pulseBPM", "maternalPulse.pulseBPM"),
		},
	},
}

// First returns the step a fresh registration advances to.
func First() Step {
	return Steps[0]
}

// BySlug looks a step up by its URL slug.
func BySlug(slug string) (Step, bool) {
	for _, s := range Steps {
		if s.Slug == slug {
			return s, true
		}
	}
	return Step{}, false
}

// NextPath returns the redirect target after a successful write of the
// given step: the next step's form, or the success view after the terminal
// step.
func NextPath(current Step, patientID string) string {
	for i, s := range Steps {
		if s.Slug == current.Slug {
			if i+1 < len(Steps) {
				return Steps[i+1].FormPath(patientID)
			}
			break
		}
	}
	return SuccessPath(patientID)
}
