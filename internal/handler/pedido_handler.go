package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vortizm/tienda-creativa/internal/database"
	"github.com/vortizm/tienda-creativa/internal/model"
)

// MaxImagenesReferencia limita cuántas imágenes de referencia se
// aceptan por solicitud. Las que sobran se descartan sin error.
const MaxImagenesReferencia = 3

// PedidoHandler maneja la solicitud pública de pedidos personalizados
// y la página de seguimiento.
type PedidoHandler struct {
	Store     *sessions.CookieStore
	UploadDir string
}

// productoDeRuta resuelve el :producto_id opcional de la ruta.
func productoDeRuta(c *gin.Context) (*model.Producto, bool) {
	idStr := c.Param("producto_id")
	if idStr == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil, false
	}
	var producto model.Producto
	if err := database.DB.First(&producto, id).Error; err != nil {
		return nil, false
	}
	return &producto, true
}

// ShowSolicitudForm renderiza el formulario de solicitud, con un
// producto del catálogo precargado cuando la ruta trae :producto_id.
func (h *PedidoHandler) ShowSolicitudForm(c *gin.Context) {
	producto, ok := productoDeRuta(c)
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", gin.H{
			"Mensaje": "El producto que buscas no existe.",
		})
		return
	}

	exito, errores := leerFlashes(h.Store, c)

	c.HTML(http.StatusOK, "formulario_solicitud.html", gin.H{
		"Producto":       producto,
		"FlashesSuccess": exito,
		"FlashesError":   errores,
	})
}

// ProcessSolicitudForm valida y persiste una nueva solicitud. El pedido
// y sus imágenes de referencia se crean en una sola transacción: si
// algo falla no queda ningún registro a medias.
func (h *PedidoHandler) ProcessSolicitudForm(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)

	productoRuta, ok := productoDeRuta(c)
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", gin.H{
			"Mensaje": "El producto que buscas no existe.",
		})
		return
	}

	nombre := strings.TrimSpace(c.PostForm("nombre_cliente"))
	descripcion := strings.TrimSpace(c.PostForm("descripcion_solicitada"))

	if nombre == "" || descripcion == "" {
		session.AddFlash("El nombre del cliente y la descripción son campos obligatorios.", "error")
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, c.Request.URL.Path)
		return
	}

	// Producto de referencia: un id explícito del formulario manda, y
	// si no resuelve el pedido queda sin referencia. El producto de la
	// ruta solo aplica cuando el formulario no trae id.
	var productoRef *model.Producto
	if idStr := c.PostForm("producto_referencia"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			var p model.Producto
			if err := database.DB.First(&p, id).Error; err == nil {
				productoRef = &p
			}
		}
	} else {
		productoRef = productoRuta
	}

	var fechaNecesidad *time.Time
	if fechaStr := c.PostForm("fecha_necesidad"); fechaStr != "" {
		fecha, err := time.Parse("2006-01-02", fechaStr)
		if err != nil {
			session.AddFlash("La fecha en que lo necesitas no es válida.", "error")
			session.Save(c.Request, c.Writer)
			c.Redirect(http.StatusFound, c.Request.URL.Path)
			return
		}
		fechaNecesidad = &fecha
	}

	pedido := model.Pedido{
		NombreCliente:         nombre,
		EmailCliente:          c.PostForm("email_cliente"),
		TelefonoCliente:       c.PostForm("telefono_cliente"),
		RedSocialCliente:      c.PostForm("red_social_cliente"),
		DescripcionSolicitada: descripcion,
		FechaNecesidad:        fechaNecesidad,
		Estado:                model.EstadoSolicitado,
		EstadoPago:            model.PagoPendiente,
		PlataformaOrigen:      model.OrigenSitioWeb,
		MontoTotal:            decimal.Zero,
		MontoAbonado:          decimal.Zero,
	}
	if productoRef != nil {
		pedido.ProductoReferenciaID = &productoRef.ID
	}

	// El recorte a MaxImagenesReferencia se decide antes de abrir la
	// transacción; el resto se descarta en silencio.
	var archivos []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		archivos = form.File["imagenes_referencia"]
		if len(archivos) > MaxImagenesReferencia {
			archivos = archivos[:MaxImagenesReferencia]
		}
	}

	var guardados []string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pedido).Error; err != nil {
			return err
		}
		for _, archivo := range archivos {
			rutaWeb, rutaDisco, err := guardarImagen(c, archivo, h.UploadDir, DirImagenesReferencia)
			if err != nil {
				return err
			}
			guardados = append(guardados, rutaDisco)
			img := model.ImagenReferencia{PedidoID: pedido.ID, Imagen: rutaWeb}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// La transacción ya revirtió la base; limpiamos los archivos
		// que alcanzaron a escribirse.
		for _, ruta := range guardados {
			if rerr := os.Remove(ruta); rerr != nil {
				fmt.Printf("AVISO: no se pudo eliminar el archivo %s: %v\n", ruta, rerr)
			}
		}
		session.AddFlash("Ocurrió un error al procesar el pedido. Intenta de nuevo.", "error")
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, c.Request.URL.Path)
		return
	}

	session.AddFlash(
		"¡Tu solicitud ha sido enviada! Usa este enlace para seguir el estado de tu pedido: "+
			urlSeguimiento(c, pedido.TokenSeguimiento),
		"success",
	)
	session.Save(c.Request, c.Writer)
	c.Redirect(http.StatusFound, "/seguimiento/"+pedido.TokenSeguimiento.String()+"/")
}

// ShowSeguimiento renderiza la página pública de seguimiento por token.
// Un token desconocido o mal formado responde 404 con la misma
// plantilla, nunca un error interno.
func (h *PedidoHandler) ShowSeguimiento(c *gin.Context) {
	exito, errores := leerFlashes(h.Store, c)

	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.HTML(http.StatusNotFound, "seguimiento.html", gin.H{
			"ErrorMessage": "El código de seguimiento no es válido.",
		})
		return
	}

	var pedido model.Pedido
	result := database.DB.
		Preload("ImagenesReferencia").
		Preload("ProductoReferencia").
		Where("token_seguimiento = ?", token).
		First(&pedido)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.HTML(http.StatusNotFound, "seguimiento.html", gin.H{
				"ErrorMessage": "El código de seguimiento no es válido.",
			})
			return
		}
		c.String(http.StatusInternalServerError, "Error al cargar el pedido.")
		return
	}

	c.HTML(http.StatusOK, "seguimiento.html", gin.H{
		"Pedido":             &pedido,
		"ImagenesReferencia": pedido.ImagenesReferencia,
		"FlashesSuccess":     exito,
		"FlashesError":       errores,
	})
}
