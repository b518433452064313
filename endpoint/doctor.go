package endpoint

import (
	"github.com/carelog/hospital-admin/model"
	"github.com/carelog/hospital-admin/util"
	"github.com/gin-gonic/gin"
)

// ListDoctors returns the doctor directory: every account with role "user"
// projected to id, name, and email.
func ListDoctors(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var doctors []model.Doctor
	if err := db.Where("role = ?", model.RoleUser).Order("name ASC").Find(&doctors).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to fetch doctors",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctors retrieved",
		Data: doctors,
	})
}
