// internal/handlers/excel.go
package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prodcat/catalogo-backend/internal/config"
	"github.com/prodcat/catalogo-backend/internal/services"
	"github.com/prodcat/catalogo-backend/internal/utils"
)

type ExcelHandler struct {
	excelService *services.ExcelService
	cfg          *config.Config
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func NewExcelHandler(excelService *services.ExcelService, cfg *config.Config) *ExcelHandler {
	return &ExcelHandler{excelService: excelService, cfg: cfg}
}

// GET /api/excel/exportar: streams the catalog as an xlsx download.
func (h *ExcelHandler) Export(c *gin.Context) {
	f, filename, err := h.excelService.Export()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// POST /api/excel/importar: multipart, single "archivo".
func (h *ExcelHandler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Debe adjuntar un archivo")
		return
	}
	// Multipart parsing may spill to temp files; clean up whatever the
	// import outcome.
	defer form.RemoveAll()

	files := form.File["archivo"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "Debe adjuntar un archivo")
		return
	}
	header := files[0]

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		utils.BadRequestResponse(c, "Solo se permiten archivos Excel (.xlsx, .xls)")
		return
	}
	if header.Size > h.cfg.Upload.MaxSpreadsheetSize {
		utils.BadRequestResponse(c, fmt.Sprintf("El archivo es muy grande. Máximo %dMB permitido.", h.cfg.Upload.MaxSpreadsheetSize/(1024*1024)))
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	result, err := h.excelService.Import(file)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensaje":    "Importación completada",
		"resultados": result,
	})
}
