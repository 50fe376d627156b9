package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// CatalogHandler expone las consultas y reportes del catálogo de una tienda (protegido).
type CatalogHandler struct {
	queries  *appcatalog.QueryUseCase
	reports  *appcatalog.ReportUseCase
	validate *validator.Validate
	log      *logger.Logger
}

// NewCatalogHandler construye el handler. log puede ser nil.
func NewCatalogHandler(queries *appcatalog.QueryUseCase, reports *appcatalog.ReportUseCase, log *logger.Logger) *CatalogHandler {
	if log == nil {
		log = logger.Nop()
	}
	v := validator.New()
	// Los errores se reportan con el nombre del query param, no del campo Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CatalogHandler{queries: queries, reports: reports, validate: v, log: log}
}

// ListProducts godoc
// @Summary      Consultar productos de la tienda
// @Description  Filtra, ordena y pagina los productos; incluye estadísticas de resumen.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        storeID         path   string  true   "ID de la tienda"
// @Param        search          query  string  false  "Texto libre (nombre, descripción, categoría)"
// @Param        status          query  string  false  "Estados separados por coma: active,draft,archived"
// @Param        category        query  string  false  "Categorías separadas por coma"
// @Param        price           query  string  false  "Rangos: free,0-25000,25000-50000,50000-100000,100000+"
// @Param        created_from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        created_to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        sort            query  string  false  "name|createdAt|price|quantity|status"
// @Param        dir             query  string  false  "asc|desc"
// @Param        limit           query  int     false  "Tamaño de página (0..500, por defecto 50)"
// @Param        offset          query  int     false  "Desplazamiento"
// @Param        stats           query  string  false  "full|filtered"
// @Success      200  {object}  dto.CatalogQueryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeID}/catalog/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	return h.list(c, entity.KindProduct)
}

// ListOrders godoc
// @Summary      Consultar pedidos de la tienda
// @Description  Igual que productos; además acepta payment_method (card,mobile_money,cash_on_delivery,bank_transfer).
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        storeID         path   string  true   "ID de la tienda"
// @Param        search          query  string  false  "Texto libre"
// @Param        status          query  string  false  "pending,processing,shipped,delivered,cancelled"
// @Param        payment_method  query  string  false  "Medios de pago separados por coma"
// @Param        price           query  string  false  "Rangos sobre el total del pedido"
// @Param        sort            query  string  false  "name|createdAt|price|quantity|status"
// @Param        dir             query  string  false  "asc|desc"
// @Param        limit           query  int     false  "Tamaño de página"
// @Param        offset          query  int     false  "Desplazamiento"
// @Param        stats           query  string  false  "full|filtered"
// @Success      200  {object}  dto.CatalogQueryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeID}/catalog/orders [get]
func (h *CatalogHandler) ListOrders(c *fiber.Ctx) error {
	return h.list(c, entity.KindOrder)
}

// ProductReport godoc
// @Summary      Reporte PDF de productos
// @Tags         catalog
// @Security     Bearer
// @Produce      application/pdf
// @Param        storeID  path  string  true  "ID de la tienda"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeID}/catalog/products/report.pdf [get]
func (h *CatalogHandler) ProductReport(c *fiber.Ctx) error {
	return h.report(c, entity.KindProduct)
}

// OrderReport godoc
// @Summary      Reporte PDF de pedidos
// @Tags         catalog
// @Security     Bearer
// @Produce      application/pdf
// @Param        storeID  path  string  true  "ID de la tienda"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeID}/catalog/orders/report.pdf [get]
func (h *CatalogHandler) OrderReport(c *fiber.Ctx) error {
	return h.report(c, entity.KindOrder)
}

func (h *CatalogHandler) list(c *fiber.Ctx, kind entity.RecordKind) error {
	req, errResp := h.parseRequest(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errResp)
	}
	out, err := h.queries.Query(c.UserContext(), c.Params("storeID"), kind, req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) report(c *fiber.Ctx, kind entity.RecordKind) error {
	req, errResp := h.parseRequest(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errResp)
	}
	pdfBytes, filename, err := h.reports.Report(c.UserContext(), c.Params("storeID"), kind, req)
	if err != nil {
		return h.writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// parseRequest lee y valida los query params. Devuelve el cuerpo de error listo para un 400.
func (h *CatalogHandler) parseRequest(c *fiber.Ctx) (dto.CatalogQueryRequest, *dto.ErrorResponse) {
	var req dto.CatalogQueryRequest
	if err := c.QueryParser(&req); err != nil {
		return req, &dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"}
	}
	if err := h.validate.Struct(req); err != nil {
		return req, &dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)}
	}
	return req, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Field()+": "+fieldMessage(e))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "min":
		return "mínimo " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "máximo " + e.Param() + " caracteres"
		}
		return "máximo " + e.Param()
	case "datetime":
		return "formato esperado YYYY-MM-DD"
	default:
		return "valor inválido"
	}
}

// writeError traduce errores de dominio a respuestas HTTP.
// Los errores internos solo se registran en el log; el cliente recibe un mensaje genérico.
func (h *CatalogHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrSourceUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SOURCE_UNAVAILABLE", Message: "no se pudo consultar la fuente de registros"})
	default:
		h.log.Error().Err(err).
			Str("request_id", GetRequestID(c)).
			Str("path", c.Path()).
			Msg("catalog: error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}
