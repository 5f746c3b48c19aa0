// internal/handlers/brand.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prodcat/catalogo-backend/internal/services"
	"github.com/prodcat/catalogo-backend/internal/utils"
)

type BrandHandler struct {
	brandService   *services.BrandService
	storageService *services.StorageService
}

func NewBrandHandler(brandService *services.BrandService, storageService *services.StorageService) *BrandHandler {
	return &BrandHandler{
		brandService:   brandService,
		storageService: storageService,
	}
}

// GET /api/marcas
func (h *BrandHandler) GetBrands(c *gin.Context) {
	marcas, err := h.brandService.List()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, marcas)
}

// GET /api/marcas/:id
func (h *BrandHandler) GetBrand(c *gin.Context) {
	id, ok := brandID(c)
	if !ok {
		return
	}

	marca, err := h.brandService.GetByID(id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, marca)
}

// POST /api/marcas: multipart, optional "logo" image.
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	req := &services.CreateBrandRequest{
		Nombre:      c.PostForm("nombre"),
		Descripcion: c.PostForm("descripcion"),
	}
	if req.Nombre == "" {
		utils.BadRequestResponse(c, "El nombre de la marca es obligatorio")
		return
	}

	logo, ok := h.storeLogo(c)
	if !ok {
		return
	}
	req.Logo = logo

	marca, err := h.brandService.Create(req)
	if err != nil {
		if logo != nil {
			h.storageService.Delete(*logo)
		}
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, marca)
}

// PUT /api/marcas/:id
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	id, ok := brandID(c)
	if !ok {
		return
	}

	req := &services.UpdateBrandRequest{}
	if v, ok := c.GetPostForm("nombre"); ok {
		req.Nombre = &v
	}
	if v, ok := c.GetPostForm("descripcion"); ok {
		req.Descripcion = &v
	}

	logo, okLogo := h.storeLogo(c)
	if !okLogo {
		return
	}
	req.Logo = logo

	marca, err := h.brandService.Update(id, req)
	if err != nil {
		if logo != nil {
			h.storageService.Delete(*logo)
		}
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, marca)
}

// DELETE /api/marcas/:id
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	id, ok := brandID(c)
	if !ok {
		return
	}

	marca, err := h.brandService.Delete(id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Marca eliminada", "marca": marca})
}

// storeLogo validates and stores the optional "logo" upload. The bool
// result is false when a response has already been sent.
func (h *BrandHandler) storeLogo(c *gin.Context) (*string, bool) {
	file, err := c.FormFile("logo")
	if err != nil {
		return nil, true
	}
	if err := h.storageService.ValidateImage(file); err != nil {
		utils.HandleServiceError(c, err)
		return nil, false
	}
	ruta, err := h.storageService.StoreImage(file)
	if err != nil {
		utils.HandleServiceError(c, err)
		return nil, false
	}
	return &ruta, true
}

func brandID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "ID de marca inválido")
		return 0, false
	}
	return id, true
}
