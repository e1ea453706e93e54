package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vortizm/tienda-creativa/internal/database"
	"github.com/vortizm/tienda-creativa/internal/model"
)

// getProjectRootTest encuentra la raíz del proyecto a partir de este
// archivo, para poder cargar las plantillas desde cualquier paquete.
func getProjectRootTest() string {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		panic("no se pudo obtener la información del caller")
	}
	return filepath.Join(filepath.Dir(currentFile), "..", "..")
}

// setupTestDB abre una base sqlite en memoria, la migra y la instala
// como la conexión global que usan los handlers.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handler_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	original := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = original })
	return db
}

// setupTestRouter arma un router en modo test con las plantillas
// reales cargadas y un store de sesión propio.
func setupTestRouter(t *testing.T) (*gin.Engine, *sessions.CookieStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	templatePattern := filepath.Join(getProjectRootTest(), "internal", "view", "templates", "*.html")
	router.LoadHTMLGlob(templatePattern)

	store := sessions.NewCookieStore([]byte("secret-key-for-test"))
	return router, store
}

func crearCategoriaTest(t *testing.T, db *gorm.DB, nombre string) model.Categoria {
	t.Helper()
	cat := model.Categoria{Nombre: nombre}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func crearProductoTest(t *testing.T, db *gorm.DB, nombre string, categoriaID uint) model.Producto {
	t.Helper()
	p := model.Producto{
		Nombre:      nombre,
		CategoriaID: categoriaID,
		Descripcion: "producto de prueba",
		PrecioBase:  decimal.NewFromFloat(12.50),
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func crearPedidoTest(t *testing.T, db *gorm.DB, estado model.EstadoPedido, pago model.EstadoPago) model.Pedido {
	t.Helper()
	pedido := model.Pedido{
		NombreCliente:         "Cliente Prueba",
		DescripcionSolicitada: "algo personalizado",
		Estado:                estado,
		EstadoPago:            pago,
		PlataformaOrigen:      model.OrigenSitioWeb,
	}
	require.NoError(t, db.Create(&pedido).Error)
	return pedido
}

// formValues codifica un formulario urlencoded.
func formValues(campos map[string]string) *bytes.Reader {
	values := url.Values{}
	for k, v := range campos {
		values.Set(k, v)
	}
	return bytes.NewReader([]byte(values.Encode()))
}

func contextoConPeticion(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestURLSeguimientoIgnoraProtoDeClienteDirecto(t *testing.T) {
	token := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/solicitar", nil)
	req.Host = "tienda.example.com"
	req.Header.Set("X-Forwarded-Proto", "https")

	enlace := urlSeguimiento(contextoConPeticion(req), token)
	assert.Equal(t, "http://tienda.example.com/seguimiento/"+token.String()+"/", enlace)
}

func TestURLSeguimientoRespetaProtoDetrasDeProxy(t *testing.T) {
	ConfiarEnProxy(true)
	t.Cleanup(func() { ConfiarEnProxy(false) })

	token := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/solicitar", nil)
	req.Host = "tienda.example.com"
	req.Header.Set("X-Forwarded-Proto", "https")

	enlace := urlSeguimiento(contextoConPeticion(req), token)
	assert.Equal(t, "https://tienda.example.com/seguimiento/"+token.String()+"/", enlace)
}

// multipartSolicitud arma un cuerpo multipart para el formulario de
// solicitud, con la cantidad pedida de imágenes adjuntas.
func multipartSolicitud(t *testing.T, campos map[string]string, numImagenes int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range campos {
		require.NoError(t, writer.WriteField(k, v))
	}
	for i := 0; i < numImagenes; i++ {
		part, err := writer.CreateFormFile("imagenes_referencia", fmt.Sprintf("referencia_%d.png", i))
		require.NoError(t, err)
		_, err = part.Write([]byte("contenido-de-imagen"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}
