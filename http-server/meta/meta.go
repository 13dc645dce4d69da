package meta

import (
	"net/http"

	"github.com/go-chi/render"

	"crm-golang/internal/constants"
)

// GetLists serves the static select options for the create-deal form.
func GetLists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string][]string{
			"deal_types":     constants.DealTypes,
			"countries":      constants.Countries,
			"currencies":     constants.Currencies,
			"stages":         constants.Stages,
			"activity_types": constants.ActivityTypes,
		})
	}
}
