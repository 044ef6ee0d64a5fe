package catalogControllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

// GET /admin/catalog/export-excel
func ExportCatalogToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.Furniture
		if err := db.Preload("Colors").Find(&items).Error; err != nil {
			response.InternalError(c)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Catalog")
		if err != nil {
			response.InternalError(c)
			return
		}

		headers := []string{
			"ID", "Name", "Price", "Height", "Width", "Depth",
			"Style", "Room", "CompanyID", "Active", "Colors", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, item := range items {
			row := sheet.AddRow()
			row.AddCell().SetValue(item.ID)
			row.AddCell().SetValue(item.Name)
			row.AddCell().SetValue(item.Price)
			row.AddCell().SetValue(item.Height)
			row.AddCell().SetValue(item.Width)
			row.AddCell().SetValue(item.Depth)
			row.AddCell().SetValue(item.Style)
			row.AddCell().SetValue(item.Room)
			row.AddCell().SetValue(item.CompanyID)
			row.AddCell().SetValue(strconv.FormatBool(item.Active))

			var colors []string
			for _, col := range item.Colors {
				colors = append(colors, col.Color)
			}
			row.AddCell().SetValue(strings.Join(colors, ","))
			row.AddCell().SetValue(item.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=catalog.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			response.InternalError(c)
			return
		}
	}
}
