package validation

import (
	"fmt"
	"time"

	"github.com/carelog/hospital-admin/model"
)

// treatmentMessage lists the accepted enum values in error messages.
func treatmentMessage() string {
	opts := model.Treatments()
	names := make([]string, len(opts))
	for i, t := range opts {
		names[i] = string(t)
	}
	return fmt.Sprintf("treatment must be one of %v", names)
}

// ValidatePatient checks a create payload and returns the coerced patient
// fields. All violated fields are reported, not just the first.
func ValidatePatient(req model.CreatePatientRequest) (model.Patient, error) {
	return validatePatient(req, "")
}

func validatePatient(req model.CreatePatientRequest, prefix string) (model.Patient, error) {
	var errs FieldErrors
	var patient model.Patient

	if !validName(req.Name) {
		errs.add(prefix, "name", fmt.Sprintf("name must be between %d and %d characters", nameMinLen, nameMaxLen))
	} else {
		patient.Name = req.Name
	}

	if req.DateOfBirth == "" {
		errs.add(prefix, "date_of_birth", "date of birth is required")
	} else if dob, err := ParseDate(req.DateOfBirth); err != nil {
		errs.add(prefix, "date_of_birth", err.Error())
	} else {
		patient.DateOfBirth = dob
	}

	if req.VisitDate == "" {
		errs.add(prefix, "visit_date", "visit date is required")
	} else if visit, err := ParseDate(req.VisitDate); err != nil {
		errs.add(prefix, "visit_date", err.Error())
	} else {
		patient.VisitDate = visit
	}

	if len(req.Diagnosis) < diagnosisMinLen {
		errs.add(prefix, "diagnosis", fmt.Sprintf("diagnosis must be at least %d characters", diagnosisMinLen))
	} else {
		patient.Diagnosis = req.Diagnosis
	}

	treatment := model.Treatment(req.Treatment)
	if !treatment.Valid() {
		errs.add(prefix, "treatment", treatmentMessage())
	} else {
		patient.Treatment = treatment
	}

	if req.DoctorID == "" {
		errs.add(prefix, "doctorId", "doctorId is required")
	} else {
		patient.DoctorID = req.DoctorID
	}

	if err := errs.orNil(); err != nil {
		return model.Patient{}, err
	}
	return patient, nil
}

// ValidatePatientBatch applies the single-record rule to every element and
// fails atomically: one invalid element rejects the whole batch. Field names
// in the returned errors carry the element index, e.g. "[2].name".
func ValidatePatientBatch(reqs []model.CreatePatientRequest) ([]model.Patient, error) {
	var errs FieldErrors
	patients := make([]model.Patient, 0, len(reqs))

	for i, req := range reqs {
		patient, err := validatePatient(req, fmt.Sprintf("[%d].", i))
		if err != nil {
			errs = append(errs, err.(FieldErrors)...)
			continue
		}
		patients = append(patients, patient)
	}

	if err := errs.orNil(); err != nil {
		return nil, err
	}
	return patients, nil
}

// PatientPatch carries the validated, coerced fields of a merge-patch payload.
// Nil fields were absent from the request and must be left untouched.
type PatientPatch struct {
	Name        *string
	DateOfBirth *time.Time
	VisitDate   *time.Time
	Diagnosis   *string
	Treatment   *model.Treatment
	DoctorID    *string
}

// ValidatePatientUpdate checks only the fields present in a merge-patch
// payload and returns them coerced, so callers apply the patch without
// re-parsing anything.
func ValidatePatientUpdate(req model.UpdatePatientRequest) (PatientPatch, error) {
	var errs FieldErrors
	var patch PatientPatch

	if req.Name != nil {
		if !validName(*req.Name) {
			errs.add("", "name", fmt.Sprintf("name must be between %d and %d characters", nameMinLen, nameMaxLen))
		} else {
			patch.Name = req.Name
		}
	}
	if req.DateOfBirth != nil {
		if dob, err := ParseDate(*req.DateOfBirth); err != nil {
			errs.add("", "date_of_birth", err.Error())
		} else {
			patch.DateOfBirth = &dob
		}
	}
	if req.VisitDate != nil {
		if visit, err := ParseDate(*req.VisitDate); err != nil {
			errs.add("", "visit_date", err.Error())
		} else {
			patch.VisitDate = &visit
		}
	}
	if req.Diagnosis != nil {
		if len(*req.Diagnosis) < diagnosisMinLen {
			errs.add("", "diagnosis", fmt.Sprintf("diagnosis must be at least %d characters", diagnosisMinLen))
		} else {
			patch.Diagnosis = req.Diagnosis
		}
	}
	if req.Treatment != nil {
		treatment := model.Treatment(*req.Treatment)
		if !treatment.Valid() {
			errs.add("", "treatment", treatmentMessage())
		} else {
			patch.Treatment = &treatment
		}
	}
	if req.DoctorID != nil {
		if *req.DoctorID == "" {
			errs.add("", "doctorId", "doctorId cannot be empty")
		} else {
			patch.DoctorID = req.DoctorID
		}
	}

	if err := errs.orNil(); err != nil {
		return PatientPatch{}, err
	}
	return patch, nil
}
