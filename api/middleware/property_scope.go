package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmstayhq/farmstay-backend/api/responses"
	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	pkgerrors "github.com/farmstayhq/farmstay-backend/pkg/errors"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
)

// PropertyScope asserts the authenticated caller may read the property named
// in the route. Admins pass; owners must own the property.
func PropertyScope(props properties.Repository, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property id"))
				return
			}

			if logg != nil {
				ctx = logg.WithPropertyID(ctx, propertyID.String())
			}

			if RoleFromContext(ctx) != string(enums.ActorRoleAdmin) {
				property, err := props.FindByID(ctx, propertyID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading property"))
					return
				}
				if property == nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "property not found"))
					return
				}
				if property.OwnerID.String() != SubjectIDFromContext(ctx) {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "property not accessible"))
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
