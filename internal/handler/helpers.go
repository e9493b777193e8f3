package handler

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"vendr/internal/apierror"
	"vendr/internal/apperr"
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
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
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

// respondErr maps the sentinel error taxonomy onto HTTP statuses.
func respondErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrNaoEncontrado):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrCaixaJaAberta),
		errors.Is(err, apperr.ErrCaixaJaFechada),
		errors.Is(err, apperr.ErrTransicaoInvalida):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrValorInvalido),
		errors.Is(err, apperr.ErrEstoqueInsuficiente):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrDadosInconsistentes):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, apierror.New(err.Error()))
}

// parsePeriodo reads the de/ate query params (YYYY-MM-DD). Defaults to the
// current day when absent; ate is exclusive (start of the next day).
func parsePeriodo(c *gin.Context) (time.Time, time.Time, error) {
	agora := time.Now()
	de := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
	ate := de.AddDate(0, 0, 1)

	if v := c.Query("de"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, agora.Location())
		if err != nil {
			return de, ate, err
		}
		de = parsed
	}
	if v := c.Query("ate"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, agora.Location())
		if err != nil {
			return de, ate, err
		}
		ate = parsed.AddDate(0, 0, 1)
	}
	return de, ate, nil
}
