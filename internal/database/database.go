// /internal/database/database.go
package database

import (
	"log"
	"os"

	"github.com/vortizm/tienda-creativa/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL no encontrada en el entorno")
	}

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Falló la conexión a la base de datos: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Falló la migración de la base de datos: %v", err)
	}
}

// Migrate ejecuta AutoMigrate sobre todos los modelos. Los tests lo
// reutilizan con su propia conexión sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Categoria{},
		&model.Producto{},
		&model.ProductoImagen{},
		&model.Insumo{},
		&model.Pedido{},
		&model.ImagenReferencia{},
	)
}
