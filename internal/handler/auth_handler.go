package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vortizm/tienda-creativa/internal/database"
	"github.com/vortizm/tienda-creativa/internal/model"
)

// AuthHandler maneja el login del personal. No hay registro público:
// la cuenta se crea con el seed.
type AuthHandler struct {
	Store *sessions.CookieStore
}

// ShowLoginPage renderiza la página de login y muestra flash messages.
func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	exito, errores := leerFlashes(h.Store, c)

	c.HTML(http.StatusOK, "login.html", gin.H{
		"FlashesSuccess": exito,
		"FlashesError":   errores,
	})
}

// ProcessLoginForm procesa los datos del formulario de login.
func (h *AuthHandler) ProcessLoginForm(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)
	email := c.PostForm("email")
	contrasena := c.PostForm("contrasena")

	var usuario model.Usuario
	result := database.DB.Where("email = ?", email).First(&usuario)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			session.AddFlash("E-mail o contraseña inválidos.", "error")
		} else {
			session.AddFlash("Ocurrió un error interno. Intenta de nuevo.", "error")
		}
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.ContrasenaHash), []byte(contrasena)); err != nil {
		session.AddFlash("E-mail o contraseña inválidos.", "error")
		session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	session.Values["userID"] = usuario.ID
	session.Values["userName"] = usuario.Nombre

	if err := session.Save(c.Request, c.Writer); err != nil {
		fmt.Printf("ERROR al guardar la sesión de login: %v\n", err)
		session.AddFlash("Error al iniciar la sesión. Intenta de nuevo.", "error")
		_ = session.Save(c.Request, c.Writer)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)
	session.Values["userID"] = nil
	session.Values["userName"] = nil

	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		fmt.Printf("Error al guardar la sesión de logout: %v\n", err)
		c.String(http.StatusInternalServerError, "Error al cerrar sesión.")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// AuthRequired exige una sesión iniciada y carga el usuario en el
// contexto.
func (h *AuthHandler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := h.Store.Get(c.Request, SessionName)
		userID, ok := session.Values["userID"].(uint)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		var user model.Usuario
		if err := database.DB.First(&user, userID).Error; err != nil {
			session.Values["userID"] = nil
			session.Values["userName"] = nil
			session.Options.MaxAge = -1
			session.Save(c.Request, c.Writer)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// RoleRequired verifica que el usuario logueado tenga el rol indicado.
func (h *AuthHandler) RoleRequired(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userData, exists := c.Get("user")
		if !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user := userData.(model.Usuario)
		if user.Tipo != requiredRole {
			c.String(http.StatusForbidden, "Acceso denegado.")
			c.Abort()
			return
		}
		c.Next()
	}
}
