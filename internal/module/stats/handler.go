package stats

import (
	"fmt"
	"time"

	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const resultSheet = "投票结果"

func GetResults(c *gin.Context) {
	var filter ResultFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	results, err := VotingResults(database.DB.WithContext(c.Request.Context()), filter)
	if err != nil {
		log.Error("查询投票结果失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"results": results, "total": len(results)})
}

// ExportResults 导出 Excel，列和 /stats/results 一致
func ExportResults(c *gin.Context) {
	var filter ResultFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	results, err := VotingResults(database.DB.WithContext(c.Request.Context()), filter)
	if err != nil {
		log.Error("查询投票结果失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := tools.ExportToExcel(f, resultSheet, results); err != nil {
		log.Error("生成投票结果表格失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	// 默认的 Sheet1 是空的
	_ = f.DeleteSheet("Sheet1")

	name := fmt.Sprintf("投票结果_%s.xlsx", time.Now().Format("20060102_150405"))
	if err := tools.SendExcel(c, f, name); err != nil {
		log.Error("发送投票结果表格失败", "error", err)
		return
	}
	log.Info("导出投票结果", "count", len(results))
}
