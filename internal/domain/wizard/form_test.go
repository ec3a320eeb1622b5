package wizard

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/netdok/maternity/internal/domain/patient"
)

func mustStep(t *testing.T, slug string) Step {
	t.Helper()
	s, ok := BySlug(slug)
	if !ok {
		t.Fatalf("no step %q", slug)
	}
	return s
}

func TestBuildSection_NestedShape(t *testing.T) {
	step := mustStep(t, "healthcare-facility")
	form := url.Values{
		"registrationDate":   {"2024-03-15"},
		"mvcNumber":          {"MVC-2291"},
		"doctorNurse":        {"Dr. Holm"},
		"insuranceNumber":    {"INS-59102"},
		"facilityName":       {"Oslo MVC"},
		"facilityBranch":     {"Sentrum"},
		"facilityStreet":     {"Storgata 1"},
		"facilityPostalCode": {"0155"},
		"facilityCity":       {"Oslo"},
	}

	doc, err := BuildSection(step, form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"registrationDate": "2024-03-15",
		"mvcNumber":        "MVC-2291",
		"doctorNurse":      "Dr. Holm",
		"insuranceNumber":  "INS-59102",
		"facilityDetails": map[string]any{
			"facilityName":   "Oslo MVC",
			"facilityBranch": "Sentrum",
			"facilityAddress": map[string]any{
				"street":     "Storgata 1",
				"postalCode": "0155",
				"city":       "Oslo",
			},
		},
	}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("doc mismatch:\n got %#v\nwant %#v", doc, want)
	}
}

func TestBuildSection_BooleanNormalization(t *testing.T) {
	step := mustStep(t, "medical-history")
	form := url.Values{
		"heartDisease":             {"true"},
		"diabetes":                 {"false"},
		"familyHereditaryDiseases": {"none known"},
		"medicationAllergies":      {"true"},
		"otherAllergies":           {"pollen"},
		"smoking":                  {"true"},
	}

	doc, err := BuildSection(step, form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc["heartDisease"] != true {
		t.Errorf(`expected heartDisease true, got %v`, doc["heartDisease"])
	}
	if doc["diabetes"] != false {
		t.Errorf(`expected "false" normalized to false, got %v`, doc["diabetes"])
	}
	// absent checkbox means unchecked, stored as false rather than omitted
	if doc["epilepsy"] != false {
		t.Errorf("expected absent boolean stored as false, got %v", doc["epilepsy"])
	}
	allergies, _ := doc["allergies"].(map[string]any)
	if allergies == nil || allergies["medicationAllergies"] != true {
		t.Errorf("expected nested boolean, got %v", doc["allergies"])
	}
	risk, _ := doc["riskFactors"].(map[string]any)
	if risk == nil || risk["smoking"] != true || risk["alcoholUse"] != false {
		t.Errorf("unexpected riskFactors %v", doc["riskFactors"])
	}
}

func TestBuildSection_MissingRequired(t *testing.T) {
	step := mustStep(t, "health-examination")
	form := url.Values{
		"heightCm": {"170"},
		"weightKg": {"68"},
	}

	doc, err := BuildSection(step, form)
	if doc != nil {
		t.Errorf("expected no document on validation failure, got %v", doc)
	}
	var verr *patient.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Missing) != 8 {
		t.Errorf("expected 8 missing fields, got %v", verr.Missing)
	}
	if !strings.Contains(err.Error(), "fetalHeartbeat") {
		t.Errorf("expected missing fields to be named, got %q", err.Error())
	}
}

func TestBuildSection_OptionalOmittedWhenEmpty(t *testing.T) {
	step := mustStep(t, "previous-pregnancies")
	form := url.Values{
		"numberOfDeliveries": {"2"},
		"pregnancyYear":      {"2021"},
		"birthDate":          {"2021-06-02"},
		"gender":             {"girl"},
		"birthWeight":        {"3400"},
	}

	doc, err := BuildSection(step, form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := doc["deliveryType"]; present {
		t.Errorf("expected empty optional field omitted, got %v", doc["deliveryType"])
	}

	form.Set("deliveryType", "vaginal")
	doc, _ = BuildSection(step, form)
	if doc["deliveryType"] != "vaginal" {
		t.Errorf("expected optional field kept when set, got %v", doc["deliveryType"])
	}
}

func TestBuildSection_StoresStringsVerbatim(t *testing.T) {
	step := mustStep(t, "health-examination")
	form := url.Values{
		"heightCm":       {"170"},
		"weightKg":       {"68.5"},
		"bmi":            {"23.7"},
		"systolic":       {"120"},
		"diastolic":      {"80"},
		"fundalHeightCm": {"28"},
		"fetalHeartbeat": {"140"},
		"bloodGlucose":   {"5.1"},
		"urineProtein":   {"negative"},
		"urineGlucose":   {"negative"},
	}

	doc, err := BuildSection(step, form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// measurements stay strings; no numeric coercion at this boundary
	if doc["weightKg"] != "68.5" {
		t.Errorf("expected verbatim string, got %T %v", doc["weightKg"], doc["weightKg"])
	}
	bp, _ := doc["bloodPressure"].(map[string]any)
	if bp == nil || bp["systolic"] != "120" || bp["diastolic"] != "80" {
		t.Errorf("unexpected bloodPressure %v", doc["bloodPressure"])
	}
}

func TestBuildSection_Deterministic(t *testing.T) {
	step := mustStep(t, "partograph")
	form := url.Values{
		"laborTime":            {"08:30"},
		"cervicalDilation":     {"6"},
		"fetalDescent":         {"2"},
		"contractionFrequency": {"3 per 10 min"},
		"contractionIntensity": {"moderate"},
		"heartRateTime":        {"08:35"},
		"heartRateBPM":         {"142"},
		"pulseTime":            {"08:35"},
		"pulseBPM":             {"88"},
	}

	a, err := BuildSection(step, form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := BuildSection(step, form)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical documents for identical input:\n%v\n%v", a, b)
	}
}
