// internal/handlers/storefront.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prodcat/catalogo-backend/internal/models"
	"github.com/prodcat/catalogo-backend/internal/services"
	"github.com/prodcat/catalogo-backend/internal/utils"
)

// StorefrontHandler serves the public, unauthenticated read endpoints the
// shop page consumes. The storefront still filters by brand name, so
// products are decorated with the resolved name.
type StorefrontHandler struct {
	productService *services.ProductService
	brandService   *services.BrandService
}

type storefrontProduct struct {
	models.Product
	Marca *string `json:"marca,omitempty"`
}

func NewStorefrontHandler(productService *services.ProductService, brandService *services.BrandService) *StorefrontHandler {
	return &StorefrontHandler{
		productService: productService,
		brandService:   brandService,
	}
}

// GET /api/store/productos
func (h *StorefrontHandler) GetProducts(c *gin.Context) {
	productos, err := h.productService.List()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	marcas, err := h.brandService.List()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	nameByID := make(map[int]string, len(marcas))
	for _, m := range marcas {
		nameByID[m.ID] = m.Nombre
	}

	out := make([]storefrontProduct, 0, len(productos))
	for _, p := range productos {
		sp := storefrontProduct{Product: p}
		if p.MarcaID != nil {
			if nombre, ok := nameByID[*p.MarcaID]; ok {
				sp.Marca = &nombre
			}
		}
		out = append(out, sp)
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/store/marcas
func (h *StorefrontHandler) GetBrands(c *gin.Context) {
	marcas, err := h.brandService.List()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, marcas)
}
