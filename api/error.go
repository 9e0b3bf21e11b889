package api

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	errorInternalServer    = errorResponse{1000, "internal server error"}
	errorInvalidParameters = errorResponse{1001, "invalid parameters"}
	errorPlaceNotFound     = errorResponse{1010, "place not found"}
	errorIndexOutOfRange   = errorResponse{1011, "place index out of range"}
	errorUpdateInFlight    = errorResponse{1012, "place update already in flight"}
	errorTravelTimeAbsent  = errorResponse{1013, "travel time not available"}
)

func abortWithEncoding(c *gin.Context, code int, resp errorResponse, errors ...error) {
	for _, err := range errors {
		log.WithField("prefix", "api").WithError(err).Error(resp.Message)
	}

	c.AbortWithStatusJSON(code, resp)
}
