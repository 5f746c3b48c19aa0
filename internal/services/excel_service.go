// internal/services/excel_service.go
package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/prodcat/catalogo-backend/internal/models"
	"github.com/prodcat/catalogo-backend/internal/store"
)

// ExcelService converts the product and brand collections to and from a
// two-sheet spreadsheet. Import merges by case-insensitive name: matching
// records keep their id and creation timestamp (brands also keep their
// logo), everything else is overwritten.
type ExcelService struct {
	db *store.Store
}

const (
	sheetProductos = "Productos"
	sheetMarcas    = "Marcas"
)

var productHeaders = []interface{}{
	"ID", "Nombre", "Descripción", "Precio", "Categoría", "Marca", "Stock",
	"Imagen Principal", "Imágenes Adicionales",
}

var brandHeaders = []interface{}{"ID", "Nombre", "Descripción", "Logo"}

type ImportResult struct {
	ProductosProcesados int      `json:"productosProcesados"`
	MarcasProcesadas    int      `json:"marcasProcesadas"`
	Errores             []string `json:"errores"`
}

func NewExcelService(db *store.Store) *ExcelService {
	return &ExcelService{db: db}
}

// Export builds the workbook and a date-stamped download filename.
func (s *ExcelService) Export() (*excelize.File, string, error) {
	productos, err := store.Read[[]models.Product](s.db, store.ColProductos)
	if err != nil {
		return nil, "", err
	}
	marcas, err := store.Read[[]models.Brand](s.db, store.ColMarcas)
	if err != nil {
		return nil, "", err
	}

	brandNameByID := make(map[int]string, len(marcas))
	for _, m := range marcas {
		brandNameByID[m.ID] = m.Nombre
	}

	f := excelize.NewFile()
	idx, err := f.NewSheet(sheetProductos)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetMarcas); err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	if err := f.SetSheetRow(sheetProductos, "A1", &productHeaders); err != nil {
		return nil, "", err
	}
	for i, p := range productos {
		marca := ""
		if p.MarcaID != nil {
			marca = brandNameByID[*p.MarcaID]
		}
		favorita := ""
		adicionales := ""
		if len(p.Imagenes) > 0 {
			favorita = p.Imagenes[0]
			adicionales = strings.Join(p.Imagenes[1:], ";")
		}
		row := []interface{}{
			p.ID, p.Nombre, p.Descripcion, p.Precio, p.Categoria, marca, p.Stock,
			favorita, adicionales,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetProductos, cell, &row); err != nil {
			return nil, "", err
		}
	}

	if err := f.SetSheetRow(sheetMarcas, "A1", &brandHeaders); err != nil {
		return nil, "", err
	}
	for i, m := range marcas {
		logo := ""
		if m.Logo != nil {
			logo = *m.Logo
		}
		row := []interface{}{m.ID, m.Nombre, m.Descripcion, logo}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetMarcas, cell, &row); err != nil {
			return nil, "", err
		}
	}

	filename := fmt.Sprintf("catalogo_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}

// Import parses both sheets when present, brands first so product rows can
// resolve brand names. Row-level failures are collected and never abort
// the batch.
func (s *ExcelService) Import(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, models.NewValidationError("El archivo no es una hoja de cálculo válida")
	}
	defer f.Close()

	result := &ImportResult{Errores: []string{}}

	if idx, _ := f.GetSheetIndex(sheetMarcas); idx != -1 {
		if err := s.importBrands(f, result); err != nil {
			return nil, err
		}
	}
	if idx, _ := f.GetSheetIndex(sheetProductos); idx != -1 {
		if err := s.importProducts(f, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *ExcelService) importBrands(f *excelize.File, result *ImportResult) error {
	rows, err := f.GetRows(sheetMarcas)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheetMarcas, err)
	}
	if len(rows) < 2 {
		return nil
	}
	cols := headerIndex(rows[0])

	return store.Update(s.db, store.ColMarcas, func(marcas []models.Brand) ([]models.Brand, error) {
		for i, row := range rows[1:] {
			fila := i + 2
			nombre := strings.TrimSpace(cellAt(row, col(cols, "nombre")))
			if nombre == "" {
				result.Errores = append(result.Errores, fmt.Sprintf("Fila %d (%s): el nombre es obligatorio", fila, sheetMarcas))
				continue
			}
			descripcion := cellAt(row, col(cols, "descripcion"))

			if idx := brandIndexByName(marcas, nombre); idx != -1 {
				// Existing brand: id, creation timestamp and logo survive,
				// spreadsheet cells never carry logos.
				now := time.Now()
				marcas[idx].Nombre = nombre
				marcas[idx].Descripcion = descripcion
				marcas[idx].FechaModificacion = &now
			} else {
				marcas = append(marcas, models.Brand{
					ID:            models.NextBrandID(marcas),
					Nombre:        nombre,
					Descripcion:   descripcion,
					FechaCreacion: time.Now(),
				})
			}
			result.MarcasProcesadas++
		}
		return marcas, nil
	})
}

func (s *ExcelService) importProducts(f *excelize.File, result *ImportResult) error {
	rows, err := f.GetRows(sheetProductos)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheetProductos, err)
	}
	if len(rows) < 2 {
		return nil
	}
	cols := headerIndex(rows[0])

	// Brand names resolve against the post-import brand collection. Read
	// before taking the product lock.
	marcas, err := store.Read[[]models.Brand](s.db, store.ColMarcas)
	if err != nil {
		return err
	}
	brandIDByName := make(map[string]int, len(marcas))
	for _, m := range marcas {
		brandIDByName[strings.ToLower(m.Nombre)] = m.ID
	}

	return store.Update(s.db, store.ColProductos, func(productos []models.Product) ([]models.Product, error) {
		for i, row := range rows[1:] {
			fila := i + 2
			nombre := strings.TrimSpace(cellAt(row, col(cols, "nombre")))
			if nombre == "" {
				result.Errores = append(result.Errores, fmt.Sprintf("Fila %d (%s): el nombre es obligatorio", fila, sheetProductos))
				continue
			}

			precioCell := strings.TrimSpace(cellAt(row, col(cols, "precio")))
			precio, err := strconv.ParseFloat(precioCell, 64)
			if err != nil || precio < 0 {
				result.Errores = append(result.Errores, fmt.Sprintf("Fila %d (%s): precio inválido: %s", fila, sheetProductos, precioCell))
				continue
			}

			stock := 0
			if stockCell := strings.TrimSpace(cellAt(row, col(cols, "stock"))); stockCell != "" {
				stock, err = strconv.Atoi(stockCell)
				if err != nil || stock < 0 {
					result.Errores = append(result.Errores, fmt.Sprintf("Fila %d (%s): stock inválido: %s", fila, sheetProductos, stockCell))
					continue
				}
			}

			categoria := strings.TrimSpace(cellAt(row, col(cols, "categoria")))
			if categoria == "" {
				categoria = models.DefaultCategoria
			}

			var marcaID *int
			if marcaCell := strings.TrimSpace(cellAt(row, col(cols, "marca"))); marcaCell != "" {
				if id, ok := brandIDByName[strings.ToLower(marcaCell)]; ok {
					marcaID = &id
				} else {
					result.Errores = append(result.Errores, fmt.Sprintf("Fila %d (%s): marca desconocida: %s", fila, sheetProductos, marcaCell))
					continue
				}
			}

			imagenes := []string{}
			if principal := strings.TrimSpace(cellAt(row, col(cols, "imagen principal"))); principal != "" {
				imagenes = append(imagenes, principal)
			}
			for _, extra := range strings.Split(cellAt(row, col(cols, "imagenes adicionales")), ";") {
				if extra = strings.TrimSpace(extra); extra != "" {
					imagenes = append(imagenes, extra)
				}
			}

			descripcion := cellAt(row, col(cols, "descripcion"))

			if idx := productIndexByName(productos, nombre); idx != -1 {
				now := time.Now()
				p := productos[idx]
				p.Nombre = nombre
				p.Descripcion = descripcion
				p.Precio = precio
				p.Categoria = categoria
				p.MarcaID = marcaID
				p.Stock = stock
				p.Imagenes = imagenes
				p.FechaModificacion = &now
				productos[idx] = p
			} else {
				productos = append(productos, models.Product{
					ID:            models.NextProductID(productos),
					Nombre:        nombre,
					Descripcion:   descripcion,
					Precio:        precio,
					Categoria:     categoria,
					MarcaID:       marcaID,
					Stock:         stock,
					Imagenes:      imagenes,
					FechaCreacion: time.Now(),
				})
			}
			result.ProductosProcesados++
		}
		return productos, nil
	})
}

// headerIndex maps normalized header names to column positions. Accents are
// stripped so "Descripción" and "Descripcion" both resolve.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}
	return cols
}

// col returns the column position for name, or -1 when the sheet lacks it.
func col(cols map[string]int, name string) int {
	if i, ok := cols[name]; ok {
		return i
	}
	return -1
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
)

func normalizeHeader(h string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(h)))
}

// cellAt is safe against excelize trimming trailing empty cells per row.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func brandIndexByName(marcas []models.Brand, nombre string) int {
	normalized := strings.ToLower(nombre)
	for i := range marcas {
		if strings.ToLower(marcas[i].Nombre) == normalized {
			return i
		}
	}
	return -1
}

func productIndexByName(productos []models.Product, nombre string) int {
	normalized := strings.ToLower(nombre)
	for i := range productos {
		if strings.ToLower(productos[i].Nombre) == normalized {
			return i
		}
	}
	return -1
}
