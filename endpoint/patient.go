package endpoint

import (
	"errors"
	"net/http"
	"time"

	"github.com/carelog/hospital-admin/model"
	"github.com/carelog/hospital-admin/util"
	"github.com/carelog/hospital-admin/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePatient validates and inserts a new patient record.
func CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}

	patient, err := validation.ValidatePatient(req)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg:    "Invalid form data",
			Err:    err,
			Fields: err,
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if !ensureDoctorExists(c, db, patient.DoctorID) {
		return
	}

	if err := db.Create(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Patient already exists",
				Err: err,
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create patient",
			Err: err,
		})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg: "Patient created successfully",
	})
}

// ListPatients returns every patient ordered by creation time descending,
// each with its doctor summary, plus the total count and the count of records
// created within the server's local calendar day.
func ListPatients(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patients []model.Patient
	if err := db.Preload("Doctor").Order("created_at DESC").Find(&patients).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to fetch patients",
			Err: err,
		})
		return
	}

	var totalPatients int64
	if err := db.Model(&model.Patient{}).Count(&totalPatients).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to count patients",
			Err: err,
		})
		return
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Millisecond)

	var totalToday int64
	if err := db.Model(&model.Patient{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&totalToday).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to count patients",
			Err: err,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"data":          patients,
		"totalPatients": totalPatients,
		"totalToday":    totalToday,
	})
}

// GetPatientInfo returns a single patient with its doctor summary.
func GetPatientInfo(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patient, ok := getPatientByID(c, db)
	if !ok {
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: patient,
	})
}

// UpdatePatient applies a merge-patch: only fields present in the request are
// validated and written, everything else keeps its prior value.
func UpdatePatient(c *gin.Context) {
	var req model.UpdatePatientRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}

	patch, err := validation.ValidatePatientUpdate(req)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg:    "Invalid form data",
			Err:    err,
			Fields: err,
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patient, ok := getPatientByID(c, db)
	if !ok {
		return
	}

	if patch.Name != nil {
		patient.Name = *patch.Name
	}
	if patch.DateOfBirth != nil {
		patient.DateOfBirth = *patch.DateOfBirth
	}
	if patch.VisitDate != nil {
		patient.VisitDate = *patch.VisitDate
	}
	if patch.Diagnosis != nil {
		patient.Diagnosis = *patch.Diagnosis
	}
	if patch.Treatment != nil {
		patient.Treatment = *patch.Treatment
	}
	if patch.DoctorID != nil {
		if !ensureDoctorExists(c, db, *patch.DoctorID) {
			return
		}
		patient.DoctorID = *patch.DoctorID
		patient.Doctor = nil
	}

	if err := db.Omit("Doctor").Save(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Patient already exists",
				Err: err,
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update patient",
			Err: err,
		})
		return
	}

	// Reload so the response embeds the (possibly reassigned) doctor summary.
	var updated model.Patient
	if err := db.Preload("Doctor").First(&updated, "id = ?", patient.ID).Error; err != nil {
		updated = patient
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient updated successfully",
		Data: updated,
	})
}

// DeletePatient permanently removes a patient record.
func DeletePatient(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patient, ok := getPatientByID(c, db)
	if !ok {
		return
	}

	if err := db.Delete(&patient).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete patient",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Patient deleted successfully",
	})
}
