package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"sample-app/internal/usecase"
	"sample-app/utils/logger"

	"github.com/labstack/echo/v4"
)

// maxRequestBody caps the accepted /fetch-data-product body.
const maxRequestBody = 1 << 20

// DataProductHandler handles /fetch-data-product.
type DataProductHandler struct {
	uc *usecase.FetchDataProduct
}

// NewDataProductHandler creates a new data product handler.
func NewDataProductHandler(uc *usecase.FetchDataProduct) *DataProductHandler {
	return &DataProductHandler{uc: uc}
}

type dataProductRequest struct {
	ProductCode string         `json:"productCode" validate:"required,max=256"`
	Parameters  map[string]any `json:"parameters" validate:"required"`
}

type invalidRequestResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Handle processes the /fetch-data-product endpoint.
func (h *DataProductHandler) Handle(c echo.Context) error {
	var req dataProductRequest
	dec := json.NewDecoder(io.LimitReader(c.Request().Body, maxRequestBody))
	// keep integers exact; the signer renders the rest as floats
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return c.JSON(http.StatusUnprocessableEntity, invalidRequestResponse{
				Message: "Invalid request",
				Errors:  map[string]string{typeErr.Field: fmt.Sprintf("%s must be of type %s", typeErr.Field, jsonKind(typeErr.Type.Kind().String()))},
			})
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	if err := c.Validate(&req); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusUnprocessableEntity, invalidRequestResponse{
				Message: "Invalid request",
				Errors:  vErr.Errors,
			})
		}
		return mapDomainError(err)
	}

	ctx := logger.WithProductCode(logger.WithOperation(c.Request().Context(), "fetch_data_product"), req.ProductCode)
	resp, err := h.uc.Execute(ctx, req.ProductCode, req.Parameters)
	if err != nil {
		return mapDomainError(err)
	}
	return relay(c, resp)
}

func jsonKind(goKind string) string {
	switch goKind {
	case "map", "struct":
		return "object"
	default:
		return goKind
	}
}
