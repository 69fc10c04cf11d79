package handlers

import (
	"net/http"

	"invoice-desk/internal/models"
	"invoice-desk/pkg/utils"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GetCatalog returns the fixed and optional service catalogs plus the
// district and payment method choices the form offers.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"fixedServices":    models.FixedServices,
		"optionalServices": models.OptionalServices,
		"districts":        models.DistrictsTN,
		"paymentMethods":   models.PaymentMethods,
		"defaultCountry":   models.DefaultCountry,
	})
}
