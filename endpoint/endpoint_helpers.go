package endpoint

import (
	"errors"
	"fmt"

	"github.com/carelog/hospital-admin/middleware"
	"github.com/carelog/hospital-admin/model"
	"github.com/carelog/hospital-admin/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

// getPatientByID loads the patient addressed by the :id route param with its
// doctor summary, answering 404 when the id does not resolve.
func getPatientByID(c *gin.Context, db *gorm.DB) (model.Patient, bool) {
	id := c.Param("id")
	if id == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Missing patient ID",
			Err: fmt.Errorf("patient ID is required"),
		})
		return model.Patient{}, false
	}

	var patient model.Patient
	if err := db.Preload("Doctor").First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{
				Msg: "Patient not found",
				Err: err,
			})
		} else {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Failed to fetch patient",
				Err: err,
			})
		}
		return model.Patient{}, false
	}

	return patient, true
}

// ensureDoctorExists rejects writes whose doctorId does not reference an
// existing user. The store's foreign key is the backstop; checking here keeps
// the error client-correctable instead of a generic constraint failure.
func ensureDoctorExists(c *gin.Context, db *gorm.DB, doctorID string) bool {
	var count int64
	if err := db.Model(&model.User{}).Where("id = ?", doctorID).Count(&count).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to verify doctor", Err: err})
		return false
	}
	if count == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "doctorId does not reference an existing user",
			Err: fmt.Errorf("doctor %s not found", doctorID),
		})
		return false
	}
	return true
}
