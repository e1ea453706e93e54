// /internal/model/pedido.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EstadoPedido define los posibles estados de un pedido personalizado.
type EstadoPedido string

const (
	EstadoSolicitado EstadoPedido = "SOLICITADO"
	EstadoAprobado   EstadoPedido = "APROBADO"
	EstadoEnProceso  EstadoPedido = "EN_PROCESO"
	EstadoRealizada  EstadoPedido = "REALIZADA"
	EstadoEntregada  EstadoPedido = "ENTREGADA"
	EstadoFinalizada EstadoPedido = "FINALIZADA"
	EstadoCancelada  EstadoPedido = "CANCELADA"
)

// EstadosPedido lista los estados en el orden habitual del flujo,
// con CANCELADA al final. Se usa para los selects del panel.
func EstadosPedido() []EstadoPedido {
	return []EstadoPedido{
		EstadoSolicitado, EstadoAprobado, EstadoEnProceso,
		EstadoRealizada, EstadoEntregada, EstadoFinalizada, EstadoCancelada,
	}
}

func (e EstadoPedido) Valido() bool {
	switch e {
	case EstadoSolicitado, EstadoAprobado, EstadoEnProceso,
		EstadoRealizada, EstadoEntregada, EstadoFinalizada, EstadoCancelada:
		return true
	}
	return false
}

// EstadoPago define el estado del cobro, independiente del estado del
// pedido. No hay pasarela de pago: lo actualiza el personal a mano.
type EstadoPago string

const (
	PagoPendiente EstadoPago = "PENDIENTE"
	PagoParcial   EstadoPago = "PARCIAL"
	PagoPagado    EstadoPago = "PAGADO"
)

func EstadosPago() []EstadoPago {
	return []EstadoPago{PagoPendiente, PagoParcial, PagoPagado}
}

func (e EstadoPago) Valido() bool {
	switch e {
	case PagoPendiente, PagoParcial, PagoPagado:
		return true
	}
	return false
}

// PlataformaOrigen indica por dónde llegó el pedido.
type PlataformaOrigen string

const (
	OrigenFacebook   PlataformaOrigen = "FACEBOOK"
	OrigenInstagram  PlataformaOrigen = "INSTAGRAM"
	OrigenWhatsApp   PlataformaOrigen = "WHATSAPP"
	OrigenPresencial PlataformaOrigen = "PRESENCIAL"
	OrigenSitioWeb   PlataformaOrigen = "SITIO_WEB"
	OrigenOtro       PlataformaOrigen = "OTRO"
)

func PlataformasOrigen() []PlataformaOrigen {
	return []PlataformaOrigen{
		OrigenFacebook, OrigenInstagram, OrigenWhatsApp,
		OrigenPresencial, OrigenSitioWeb, OrigenOtro,
	}
}

func (p PlataformaOrigen) Valida() bool {
	switch p {
	case OrigenFacebook, OrigenInstagram, OrigenWhatsApp,
		OrigenPresencial, OrigenSitioWeb, OrigenOtro:
		return true
	}
	return false
}

// Pedido es una solicitud de artículo personalizado enviada por un
// cliente. El producto de referencia es opcional y débil: si el
// producto se elimina, la referencia queda en null y el pedido sigue.
type Pedido struct {
	ID               uint   `gorm:"primaryKey"`
	NombreCliente    string `gorm:"size:200;not null"`
	EmailCliente     string `gorm:"size:254"`
	TelefonoCliente  string `gorm:"size:50"`
	RedSocialCliente string `gorm:"size:100"`

	ProductoReferenciaID *uint     `gorm:"index"`
	ProductoReferencia   *Producto `gorm:"foreignKey:ProductoReferenciaID;constraint:OnDelete:SET NULL"`

	DescripcionSolicitada string     `gorm:"type:text;not null"`
	FechaNecesidad        *time.Time `gorm:"type:date"`
	FechaCreacion         time.Time  `gorm:"autoCreateTime"`

	Estado           EstadoPedido     `gorm:"type:varchar(20);not null;default:'SOLICITADO'"`
	EstadoPago       EstadoPago       `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	PlataformaOrigen PlataformaOrigen `gorm:"type:varchar(20);not null;default:'SITIO_WEB'"`

	// TokenSeguimiento es la clave pública de la página de seguimiento.
	// Se genera al crear el pedido y nunca cambia.
	TokenSeguimiento uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	MontoTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	MontoAbonado decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	ImagenesReferencia []ImagenReferencia `gorm:"constraint:OnDelete:CASCADE"`
}

func (p *Pedido) BeforeCreate(tx *gorm.DB) error {
	if p.TokenSeguimiento == uuid.Nil {
		p.TokenSeguimiento = uuid.New()
	}
	return nil
}

// PuedeFinalizar indica si el pedido admite pasar a FINALIZADA:
// solo cuando el pago está completo.
func (p *Pedido) PuedeFinalizar() bool {
	return p.EstadoPago == PagoPagado
}

// IndicadorPago devuelve el texto del indicador visual de pago que
// muestra el panel.
func (p *Pedido) IndicadorPago() string {
	switch p.EstadoPago {
	case PagoPagado:
		return "✔ PAGADO COMPLETO"
	case PagoParcial:
		return "⚠ PAGO PARCIAL"
	default:
		return "✘ PENDIENTE"
	}
}

// IndicadorPagoClase devuelve la clase CSS del indicador.
func (p *Pedido) IndicadorPagoClase() string {
	switch p.EstadoPago {
	case PagoPagado:
		return "pago-completo"
	case PagoParcial:
		return "pago-parcial"
	default:
		return "pago-pendiente"
	}
}

// ImagenReferencia guarda la ruta de una imagen que el cliente subió
// como referencia del artículo que quiere. Máximo 3 por pedido,
// aplicado por el flujo de solicitud.
type ImagenReferencia struct {
	ID       uint   `gorm:"primaryKey"`
	PedidoID uint   `gorm:"not null;index"`
	Imagen   string `gorm:"not null"`
}
