package endpoint

import (
	"encoding/csv"
	"errors"
	"net/http"
	"time"

	"github.com/carelog/hospital-admin/model"
	"github.com/carelog/hospital-admin/util"
	"github.com/carelog/hospital-admin/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// csvHeader is the fixed column set of the patient export.
var csvHeader = []string{"Name", "DateOfBirth", "VisitDate", "Diagnosis", "Treatment", "DoctorName", "DoctorEmail"}

// ImportPatients bulk-inserts patient records. The batch is validated
// atomically: one invalid element rejects the whole request. Records that
// collide with an existing unique key are skipped silently; the response
// count covers only the rows actually inserted.
func ImportPatients(c *gin.Context) {
	var reqs []model.CreatePatientRequest
	if !bindJSONOrRespond(c, &reqs, "Invalid request body") {
		return
	}

	patients, err := validation.ValidatePatientBatch(reqs)
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

	if !ensureBatchDoctorsExist(c, db, patients) {
		return
	}

	count := 0
	for i := range patients {
		if err := db.Create(&patients[i]).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Failed to import patients",
				Err: err,
			})
			return
		}
		count++
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Patients imported successfully",
		"count":   count,
	})
}

// ensureBatchDoctorsExist checks every referenced doctor id in one query.
func ensureBatchDoctorsExist(c *gin.Context, db *gorm.DB, patients []model.Patient) bool {
	seen := make(map[string]struct{}, len(patients))
	ids := make([]string, 0, len(patients))
	for _, p := range patients {
		if _, ok := seen[p.DoctorID]; ok {
			continue
		}
		seen[p.DoctorID] = struct{}{}
		ids = append(ids, p.DoctorID)
	}
	if len(ids) == 0 {
		return true
	}

	var count int64
	if err := db.Model(&model.User{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to verify doctors", Err: err})
		return false
	}
	if count != int64(len(ids)) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "doctorId does not reference an existing user",
			Err: errors.New("unknown doctor id in batch"),
		})
		return false
	}
	return true
}

// ExportPatientsCSV streams every patient as CSV, newest first, with the
// doctor columns left empty when no doctor is linked.
func ExportPatientsCSV(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patients []model.Patient
	if err := db.Preload("Doctor").Order("created_at DESC").Find(&patients).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to export CSV",
			Err: err,
		})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=patients.csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvHeader)
	for _, p := range patients {
		doctorName, doctorEmail := "", ""
		if p.Doctor != nil {
			doctorName = p.Doctor.Name
			doctorEmail = p.Doctor.Email
		}
		_ = w.Write([]string{
			p.Name,
			p.DateOfBirth.Format(time.RFC3339),
			p.VisitDate.Format(time.RFC3339),
			p.Diagnosis,
			string(p.Treatment),
			doctorName,
			doctorEmail,
		})
	}
	w.Flush()
}
