// /internal/model/usuario.go
package model

import "time"

// RoleStaff es el único rol con acceso al panel. El sitio no tiene
// cuentas de clientes.
const RoleStaff = "staff"

type Usuario struct {
	ID             uint   `gorm:"primaryKey"`
	Nombre         string `gorm:"not null"`
	Email          string `gorm:"unique;not null"`
	ContrasenaHash string `gorm:"not null"`
	Tipo           string `gorm:"default:'staff';not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
