package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/hugohenrick/erp-vendas/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateLayout é o formato das datas de negócio aceitas pela API
const DateLayout = "2006-01-02"

var registerOnce sync.Once

// RegisterValidators configura o validador do gin. decimal.Decimal passa a ser
// validado como número (gt, gte, lt), a regra money recusa frações de centavo
// e as mensagens usam o nome JSON do campo.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("money", validateMoney)

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// validateMoney recebe o decimal já convertido em float64 pela função de tipo
func validateMoney(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return shared.IsMoney(decimal.NewFromFloat(field.Float()))
	}
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return shared.IsMoney(d)
	}
	return true
}

// ValidationFields converte erros do validador em campo → regra violada
func ValidationFields(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		fields[ve.Namespace()] = ve.Tag()
	}
	return fields
}

// ParseDate converte uma data no formato DateLayout; texto vazio resulta em
// tempo zero, que o domínio interpreta como hoje
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}
