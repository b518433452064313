package util

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

type APIErrorParams struct {
	Msg    string
	Err    error
	Fields interface{}
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

func callError(c *gin.Context, status int, params APIErrorParams) {
	if params.Err != nil {
		log.Printf("%s %s -> %d: %v", c.Request.Method, c.Request.URL.Path, status, params.Err)
	}
	c.JSON(status, APIResponse{
		Status:  "error",
		Message: params.Msg,
		Errors:  params.Fields,
	})
}

// CallUserError returns a 400 for client-correctable problems. Validation
// failures attach their field-level detail via params.Fields.
func CallUserError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusBadRequest, params)
}

// CallErrorNotFound returns a 404 when an id does not resolve.
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusNotFound, params)
}

// CallUserNotAuthorized returns a 401 for missing or invalid sessions.
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusUnauthorized, params)
}

// CallServerError returns a 500. The underlying error is logged, never sent
// to the caller.
func CallServerError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusInternalServerError, params)
}

// CallSuccessOK returns a 200 success envelope.
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Message: params.Msg,
		Data:    params.Data,
	})
}

// CallSuccessCreated returns a 201 success envelope.
func CallSuccessCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Message: params.Msg,
		Data:    params.Data,
	})
}
