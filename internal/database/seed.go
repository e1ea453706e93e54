// /internal/database/seed.go
package database

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vortizm/tienda-creativa/internal/model"
)

// SeedStaff crea la cuenta del personal si todavía no existe. El panel
// no tiene registro público, así que esta es la única vía de alta.
func SeedStaff() {
	email := os.Getenv("STAFF_EMAIL")
	if email == "" {
		email = "personal@tiendacreativa.com"
	}

	var user model.Usuario
	result := DB.Where("email = ?", email).First(&user)

	if result.Error != nil && errors.Is(result.Error, gorm.ErrRecordNotFound) {
		log.Println("Cuenta del personal no encontrada, creando una nueva...")

		contrasena := os.Getenv("STAFF_PASSWORD")
		if contrasena == "" {
			log.Fatal("STAFF_PASSWORD no encontrada en el entorno")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(contrasena), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Falló el hash de la contraseña del personal: %v", err)
		}

		staff := model.Usuario{
			Nombre:         "Personal",
			Email:          email,
			ContrasenaHash: string(hash),
			Tipo:           model.RoleStaff,
		}

		if err := DB.Create(&staff).Error; err != nil {
			log.Fatalf("Falló la creación de la cuenta del personal: %v", err)
		}
		log.Println("Cuenta del personal creada con éxito.")
	} else {
		log.Println("La cuenta del personal ya existe.")
	}
}
