package handler

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/apierror"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/middleware"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode("invalid_input", "JSON invalide: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindStrict is bindAndValidate for patch requests: unknown JSON keys are
// rejected so a typo never silently skips a field.
func bindStrict(c *gin.Context, req interface{}) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.WithCode("invalid_input", "JSON invalide: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID reads the :id path parameter. Returns 0 and writes the response
// when the parameter is not a positive integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.WithCode("invalid_input", "ID invalide"))
		return 0, false
	}
	return uint(id), true
}

// acteur builds the service actor from the authenticated session.
func acteur(c *gin.Context) service.Acteur {
	sess := middleware.GetSession(c)
	if sess == nil {
		return service.Acteur{}
	}
	id := sess.UtilisateurID
	return service.Acteur{ID: &id, Username: sess.Username}
}

// respondErr maps a domain error to its HTTP status and stable code.
// Non-domain errors become an opaque 500.
func respondErr(c *gin.Context, err error) {
	kind := service.KindOf(err)
	switch kind {
	case service.KindInvalidInput:
		c.JSON(http.StatusBadRequest, apierror.WithCode(string(kind), err.Error()))
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, apierror.WithCode(string(kind), err.Error()))
	case service.KindPermissionDenied:
		c.JSON(http.StatusForbidden, apierror.WithCode(string(kind), err.Error()))
	case service.KindInsufficientStock, service.KindOverpaymentRejected, service.KindStateConflict:
		c.JSON(http.StatusConflict, apierror.WithCode(string(kind), err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur interne du serveur"))
	}
}
