package controllers

import (
	"fmt"
	"net/http"
	"time"

	"hotel/response"
	"hotel/services/report"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	occupancy *report.OccupancyReporter
}

func NewReportController(occupancy *report.OccupancyReporter) ReportController {
	return ReportController{occupancy: occupancy}
}

// @Summary  Xuất báo cáo công suất phòng
// @Tags     reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success  200 {file} file
// @Router   /reports/occupancy.xlsx [get]
func (r ReportController) Occupancy(c *gin.Context) {
	data, err := r.occupancy.Generate(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	filename := fmt.Sprintf("occupancy_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
