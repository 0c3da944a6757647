package vehicle

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func vehicleID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil && id < 1 {
		err = strconv.ErrRange
	}
	return id, err
}
