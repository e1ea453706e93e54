// /internal/handler/helpers.go
package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// SessionName es el nombre del cookie de sesión del sitio.
const SessionName = "tienda-creativa-session"

// Subdirectorios de subida de imágenes.
const (
	DirImagenesProducto   = "productos_imagenes"
	DirImagenesReferencia = "referencias_clientes"
)

// leerFlashes saca los mensajes flash de la sesión y la guarda.
func leerFlashes(store *sessions.CookieStore, c *gin.Context) (exito, errores []interface{}) {
	session, _ := store.Get(c.Request, SessionName)
	exito = session.Flashes("success")
	errores = session.Flashes("error")
	if err := session.Save(c.Request, c.Writer); err != nil {
		fmt.Printf("AVISO: error al guardar la sesión: %v\n", err)
	}
	return exito, errores
}

// guardarImagen escribe el archivo subido bajo uploadDir/subdir con un
// nombre único. Devuelve la ruta web para guardar en la base y la ruta
// física para poder limpiar si la operación falla después.
func guardarImagen(c *gin.Context, file *multipart.FileHeader, uploadDir, subdir string) (rutaWeb, rutaDisco string, err error) {
	ext := filepath.Ext(file.Filename)
	nombre := uuid.New().String() + ext
	rutaDisco = filepath.Join(uploadDir, subdir, nombre)

	if err := os.MkdirAll(filepath.Join(uploadDir, subdir), 0o755); err != nil {
		return "", "", err
	}
	if err := c.SaveUploadedFile(file, rutaDisco); err != nil {
		return "", "", err
	}
	return "/uploads/" + subdir + "/" + nombre, rutaDisco, nil
}

// confiarEnProxy habilita el uso de X-Forwarded-Proto para armar URLs
// absolutas. Se activa al arrancar junto con los proxies confiables
// del router; sin proxy configurado el header llega del cliente y no
// se puede creer.
var confiarEnProxy bool

func ConfiarEnProxy(valor bool) {
	confiarEnProxy = valor
}

// urlSeguimiento arma la URL absoluta de seguimiento a partir de la
// petición actual.
func urlSeguimiento(c *gin.Context, token uuid.UUID) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if confiarEnProxy {
		if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
	}
	return fmt.Sprintf("%s://%s/seguimiento/%s/", scheme, c.Request.Host, token)
}
