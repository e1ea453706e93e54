package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vortizm/tienda-creativa/internal/database"
	"github.com/vortizm/tienda-creativa/internal/model"
)

// MaxImagenesProducto limita las imágenes por producto. Se aplica en
// el formulario del panel, igual que en el resto de validaciones de
// esta capa.
const MaxImagenesProducto = 3

// ShowProductos busca todos los productos y renderiza la página de
// gestión.
func (h *AdminHandler) ShowProductos(c *gin.Context) {
	user, _ := h.getSessionData(c)
	exito, errores := leerFlashes(h.Store, c)

	var productos []model.Producto
	if err := database.DB.Preload("Categoria").Preload("Imagenes").Find(&productos).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar los productos.")
		return
	}

	c.HTML(http.StatusOK, "admin_productos.html", gin.H{
		"User":           user,
		"Productos":      productos,
		"FlashesSuccess": exito,
		"FlashesError":   errores,
	})
}

// ShowProductoForm renderiza el formulario de alta o edición.
func (h *AdminHandler) ShowProductoForm(c *gin.Context) {
	user, _ := h.getSessionData(c)
	exito, errores := leerFlashes(h.Store, c)

	var producto *model.Producto
	if idStr := c.Param("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			c.String(http.StatusBadRequest, "ID inválido.")
			return
		}
		var p model.Producto
		if err := database.DB.Preload("Imagenes").First(&p, id).Error; err != nil {
			c.String(http.StatusNotFound, "Producto no encontrado.")
			return
		}
		producto = &p
	}

	var categorias []model.Categoria
	database.DB.Find(&categorias)

	c.HTML(http.StatusOK, "admin_producto_form.html", gin.H{
		"User":           user,
		"Producto":       producto,
		"Categorias":     categorias,
		"FlashesSuccess": exito,
		"FlashesError":   errores,
	})
}

// leerProductoForm valida los campos comunes de alta y edición.
func (h *AdminHandler) leerProductoForm(c *gin.Context) (nombre, descripcion string, categoriaID uint, precio decimal.Decimal, destacado bool, err error) {
	nombre = strings.TrimSpace(c.PostForm("nombre"))
	descripcion = c.PostForm("descripcion")
	destacado = c.PostForm("destacado") == "true"

	if nombre == "" {
		return "", "", 0, decimal.Zero, false, fmt.Errorf("el nombre es obligatorio")
	}

	catID, perr := strconv.ParseUint(c.PostForm("categoria"), 10, 32)
	if perr != nil {
		return "", "", 0, decimal.Zero, false, fmt.Errorf("la categoría es inválida")
	}
	var categoria model.Categoria
	if database.DB.First(&categoria, catID).Error != nil {
		return "", "", 0, decimal.Zero, false, fmt.Errorf("la categoría no existe")
	}

	precio, perr = decimal.NewFromString(c.PostForm("precio_base"))
	if perr != nil || precio.IsNegative() {
		return "", "", 0, decimal.Zero, false, fmt.Errorf("el precio es inválido")
	}

	return nombre, descripcion, uint(catID), precio, destacado, nil
}

// ProcessNewProductoForm procesa el formulario de alta de producto,
// con hasta 3 imágenes.
func (h *AdminHandler) ProcessNewProductoForm(c *gin.Context) {
	nombre, descripcion, categoriaID, precio, destacado, err := h.leerProductoForm(c)
	if err != nil {
		h.flash(c, "Error: "+err.Error()+".", "error")
		c.Redirect(http.StatusFound, "/admin/productos/nuevo")
		return
	}

	var archivos []*multipart.FileHeader
	if form, ferr := c.MultipartForm(); ferr == nil && form != nil {
		archivos = form.File["imagenes"]
	}
	if len(archivos) > MaxImagenesProducto {
		h.flash(c, fmt.Sprintf("Un producto admite como máximo %d imágenes.", MaxImagenesProducto), "error")
		c.Redirect(http.StatusFound, "/admin/productos/nuevo")
		return
	}

	producto := model.Producto{
		Nombre:      nombre,
		Slug:        c.PostForm("slug"),
		Descripcion: descripcion,
		CategoriaID: categoriaID,
		PrecioBase:  precio,
		Destacado:   destacado,
	}

	var guardados []string
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&producto).Error; err != nil {
			return err
		}
		for _, archivo := range archivos {
			rutaWeb, rutaDisco, err := guardarImagen(c, archivo, h.UploadDir, DirImagenesProducto)
			if err != nil {
				return err
			}
			guardados = append(guardados, rutaDisco)
			img := model.ProductoImagen{ProductoID: producto.ID, Imagen: rutaWeb}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, ruta := range guardados {
			os.Remove(ruta)
		}
		h.flash(c, "Error al guardar el producto. ¿El slug ya existe?", "error")
		c.Redirect(http.StatusFound, "/admin/productos/nuevo")
		return
	}

	h.flash(c, "Producto creado con éxito.", "success")
	c.Redirect(http.StatusFound, "/admin/productos")
}

// ProcessEditProductoForm procesa la edición de un producto. Las
// imágenes nuevas se suman a las existentes hasta el máximo.
func (h *AdminHandler) ProcessEditProductoForm(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "ID inválido.")
		return
	}

	var producto model.Producto
	if err := database.DB.Preload("Imagenes").First(&producto, id).Error; err != nil {
		c.String(http.StatusNotFound, "Producto no encontrado.")
		return
	}

	volver := fmt.Sprintf("/admin/productos/%d/editar", producto.ID)

	nombre, descripcion, categoriaID, precio, destacado, err := h.leerProductoForm(c)
	if err != nil {
		h.flash(c, "Error: "+err.Error()+".", "error")
		c.Redirect(http.StatusFound, volver)
		return
	}

	var archivos []*multipart.FileHeader
	if form, ferr := c.MultipartForm(); ferr == nil && form != nil {
		archivos = form.File["imagenes"]
	}
	if len(producto.Imagenes)+len(archivos) > MaxImagenesProducto {
		h.flash(c, fmt.Sprintf("Un producto admite como máximo %d imágenes.", MaxImagenesProducto), "error")
		c.Redirect(http.StatusFound, volver)
		return
	}

	producto.Nombre = nombre
	producto.Descripcion = descripcion
	producto.CategoriaID = categoriaID
	producto.PrecioBase = precio
	producto.Destacado = destacado

	var guardados []string
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&producto).Error; err != nil {
			return err
		}
		for _, archivo := range archivos {
			rutaWeb, rutaDisco, err := guardarImagen(c, archivo, h.UploadDir, DirImagenesProducto)
			if err != nil {
				return err
			}
			guardados = append(guardados, rutaDisco)
			img := model.ProductoImagen{ProductoID: producto.ID, Imagen: rutaWeb}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, ruta := range guardados {
			os.Remove(ruta)
		}
		h.flash(c, "Error al actualizar el producto.", "error")
		c.Redirect(http.StatusFound, volver)
		return
	}

	h.flash(c, "Producto actualizado con éxito.", "success")
	c.Redirect(http.StatusFound, "/admin/productos")
}

// eliminarProducto borra el producto con sus imágenes y deja en null
// la referencia de los pedidos que lo usaban. Los pedidos nunca se
// borran en cascada.
func (h *AdminHandler) eliminarProducto(tx *gorm.DB, producto *model.Producto) error {
	if err := tx.Model(&model.Pedido{}).
		Where("producto_referencia_id = ?", producto.ID).
		Update("producto_referencia_id", nil).Error; err != nil {
		return err
	}

	var imagenes []model.ProductoImagen
	if err := tx.Where("producto_id = ?", producto.ID).Find(&imagenes).Error; err != nil {
		return err
	}
	for _, img := range imagenes {
		h.eliminarArchivoImagen(img.Imagen)
	}
	if err := tx.Where("producto_id = ?", producto.ID).Delete(&model.ProductoImagen{}).Error; err != nil {
		return err
	}

	return tx.Delete(&model.Producto{}, producto.ID).Error
}

// DeleteProducto elimina un producto, sus imágenes y el archivo de
// cada una.
func (h *AdminHandler) DeleteProducto(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "ID inválido.")
		return
	}

	var producto model.Producto
	if err := database.DB.First(&producto, id).Error; err != nil {
		c.String(http.StatusNotFound, "Producto no encontrado.")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return h.eliminarProducto(tx, &producto)
	})
	if err != nil {
		h.flash(c, "Error al eliminar el producto.", "error")
		c.Redirect(http.StatusFound, "/admin/productos")
		return
	}

	h.flash(c, "Producto eliminado.", "success")
	c.Redirect(http.StatusFound, "/admin/productos")
}

// DeleteProductoImagen elimina una imagen suelta de un producto.
func (h *AdminHandler) DeleteProductoImagen(c *gin.Context) {
	imgID, err := strconv.ParseUint(c.Param("imagen_id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "ID inválido.")
		return
	}

	var imagen model.ProductoImagen
	if err := database.DB.First(&imagen, imgID).Error; err != nil {
		c.String(http.StatusNotFound, "Imagen no encontrada.")
		return
	}

	h.eliminarArchivoImagen(imagen.Imagen)
	if err := database.DB.Delete(&model.ProductoImagen{}, imgID).Error; err != nil {
		h.flash(c, "Error al eliminar la imagen.", "error")
	} else {
		h.flash(c, "Imagen eliminada.", "success")
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/admin/productos/%d/editar", imagen.ProductoID))
}

// eliminarArchivoImagen borra del disco un archivo guardado con su
// ruta web /uploads/...; un fallo solo se registra.
func (h *AdminHandler) eliminarArchivoImagen(rutaWeb string) {
	relativa := strings.TrimPrefix(rutaWeb, "/uploads/")
	if relativa == "" || relativa == rutaWeb {
		return
	}
	ruta := filepath.Join(h.UploadDir, filepath.FromSlash(relativa))
	if err := os.Remove(ruta); err != nil {
		fmt.Printf("AVISO: no se pudo eliminar el archivo %s: %v\n", ruta, err)
	}
}
