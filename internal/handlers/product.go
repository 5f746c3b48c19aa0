// internal/handlers/product.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prodcat/catalogo-backend/internal/config"
	"github.com/prodcat/catalogo-backend/internal/services"
	"github.com/prodcat/catalogo-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
	cfg            *config.Config
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
		cfg:            cfg,
	}
}

// GET /api/productos
func (h *ProductHandler) GetProducts(c *gin.Context) {
	productos, err := h.productService.List()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productos)
}

// GET /api/productos/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	producto, err := h.productService.GetByID(id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producto)
}

// POST /api/productos: multipart, up to 10 images under "imagenes".
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	req := &services.CreateProductRequest{
		Nombre:      c.PostForm("nombre"),
		Descripcion: c.PostForm("descripcion"),
		Categoria:   c.PostForm("categoria"),
	}

	precioStr, hasPrecio := c.GetPostForm("precio")
	if req.Nombre == "" || !hasPrecio || precioStr == "" {
		utils.BadRequestResponse(c, "Nombre y precio son obligatorios")
		return
	}

	// Numeric fields are parsed strictly: a malformed value is rejected
	// instead of silently coerced.
	precio, err := strconv.ParseFloat(precioStr, 64)
	if err != nil {
		utils.BadRequestResponse(c, "El precio debe ser un número válido")
		return
	}
	req.Precio = precio

	if stockStr, ok := c.GetPostForm("stock"); ok && stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil {
			utils.BadRequestResponse(c, "El stock debe ser un número entero válido")
			return
		}
		req.Stock = stock
	}

	if marcaStr, ok := c.GetPostForm("marcaId"); ok && marcaStr != "" {
		marcaID, err := strconv.Atoi(marcaStr)
		if err != nil {
			utils.BadRequestResponse(c, "El campo marcaId debe ser un número entero")
			return
		}
		req.MarcaID = &marcaID
	}

	if atributosStr, ok := c.GetPostForm("atributos"); ok && atributosStr != "" {
		if err := json.Unmarshal([]byte(atributosStr), &req.Atributos); err != nil {
			utils.BadRequestResponse(c, "El campo atributos debe ser JSON válido")
			return
		}
	}

	if favStr, ok := c.GetPostForm("indiceFavorita"); ok && favStr != "" {
		fav, err := strconv.Atoi(favStr)
		if err != nil {
			utils.BadRequestResponse(c, "El campo indiceFavorita debe ser un número entero")
			return
		}
		req.IndiceFavorita = &fav
	}

	rutas, ok := h.storeUploadedImages(c, "imagenes")
	if !ok {
		return
	}
	req.Imagenes = rutas

	producto, err := h.productService.Create(req)
	if err != nil {
		// Already-stored files must not linger once the request fails.
		h.storageService.DeleteAll(rutas)
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, producto)
}

// PUT /api/productos/:id: multipart, optional single replacement "imagen".
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	req := &services.UpdateProductRequest{}
	if v, ok := c.GetPostForm("nombre"); ok {
		req.Nombre = &v
	}
	if v, ok := c.GetPostForm("descripcion"); ok {
		req.Descripcion = &v
	}
	if v, ok := c.GetPostForm("categoria"); ok {
		req.Categoria = &v
	}
	if v, ok := c.GetPostForm("precio"); ok {
		precio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			utils.BadRequestResponse(c, "El precio debe ser un número válido")
			return
		}
		req.Precio = &precio
	}
	if v, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			utils.BadRequestResponse(c, "El stock debe ser un número entero válido")
			return
		}
		req.Stock = &stock
	}
	if v, ok := c.GetPostForm("marcaId"); ok {
		req.MarcaSet = true
		if v != "" {
			marcaID, err := strconv.Atoi(v)
			if err != nil {
				utils.BadRequestResponse(c, "El campo marcaId debe ser un número entero")
				return
			}
			req.MarcaID = &marcaID
		}
	}
	if v, ok := c.GetPostForm("atributos"); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &req.Atributos); err != nil {
			utils.BadRequestResponse(c, "El campo atributos debe ser JSON válido")
			return
		}
	}
	req.EliminarImagen = c.PostForm("eliminarImagen") == "true"

	var nuevaRuta string
	if file, err := c.FormFile("imagen"); err == nil {
		if err := h.storageService.ValidateImage(file); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		ruta, err := h.storageService.StoreImage(file)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		nuevaRuta = ruta
		req.NuevaImagen = &nuevaRuta
	}

	producto, err := h.productService.Update(id, req)
	if err != nil {
		if nuevaRuta != "" {
			h.storageService.Delete(nuevaRuta)
		}
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, producto)
}

// DELETE /api/productos/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	producto, err := h.productService.Delete(id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Producto eliminado", "producto": producto})
}

// POST /api/productos/:id/imagenes: append images.
func (h *ProductHandler) AddImages(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var favorita *int
	if favStr, ok := c.GetPostForm("indiceFavorita"); ok && favStr != "" {
		fav, err := strconv.Atoi(favStr)
		if err != nil {
			utils.BadRequestResponse(c, "El campo indiceFavorita debe ser un número entero")
			return
		}
		favorita = &fav
	}

	rutas, ok := h.storeUploadedImages(c, "imagenes")
	if !ok {
		return
	}
	if len(rutas) == 0 {
		utils.BadRequestResponse(c, "Debe adjuntar al menos una imagen")
		return
	}

	producto, err := h.productService.AddImages(id, rutas, favorita)
	if err != nil {
		h.storageService.DeleteAll(rutas)
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, producto)
}

// PUT /api/productos/:id/imagenes: replace the full ordered list.
func (h *ProductHandler) ReorderImages(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req struct {
		Imagenes []string `json:"imagenes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "El campo imagenes debe ser un arreglo")
		return
	}

	producto, err := h.productService.ReorderImages(id, req.Imagenes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, producto)
}

// DELETE /api/productos/:id/imagenes
func (h *ProductHandler) RemoveImage(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req struct {
		RutaImagen string `json:"rutaImagen"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RutaImagen == "" {
		utils.BadRequestResponse(c, "La ruta de la imagen es obligatoria")
		return
	}

	producto, err := h.productService.RemoveImage(id, req.RutaImagen)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, producto)
}

// storeUploadedImages validates every file under field before storing any,
// then stores them all; a failure mid-store rolls back the ones already
// written. The bool result is false when a response has been sent.
func (h *ProductHandler) storeUploadedImages(c *gin.Context, field string) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all: an imageless create is valid.
		return []string{}, true
	}

	files := form.File[field]
	if len(files) > h.cfg.Upload.MaxImagesPerUpload {
		utils.BadRequestResponse(c, fmt.Sprintf("Máximo %d imágenes por solicitud", h.cfg.Upload.MaxImagesPerUpload))
		return nil, false
	}
	for _, file := range files {
		if err := h.storageService.ValidateImage(file); err != nil {
			utils.HandleServiceError(c, err)
			return nil, false
		}
	}

	rutas := make([]string, 0, len(files))
	for _, file := range files {
		ruta, err := h.storageService.StoreImage(file)
		if err != nil {
			h.storageService.DeleteAll(rutas)
			utils.HandleServiceError(c, err)
			return nil, false
		}
		rutas = append(rutas, ruta)
	}
	return rutas, true
}

func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "ID de producto inválido")
		return 0, false
	}
	return id, true
}
