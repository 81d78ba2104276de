package request

import (
	"regexp"

	"warehouse-booking/internal/domain/payment"
	"warehouse-booking/internal/domain/reservation"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// up to two fractional digits, no sign, no exponent
var decimal2Regex = regexp.MustCompile(`^\d{1,10}(\.\d{1,2})?$`)

// RegisterValidators adds the custom binding tags to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"decimal2":           validateDecimal2,
		"reservation_status": validateReservationStatus,
		"payment_method":     validatePaymentMethod,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return errors.Wrapf(err, "register %q validator", tag)
		}
	}
	return nil
}

func validateDecimal2(fl validator.FieldLevel) bool {
	return decimal2Regex.MatchString(fl.Field().String())
}

func validateReservationStatus(fl validator.FieldLevel) bool {
	_, err := reservation.NewStatus(fl.Field().String())
	return err == nil
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	_, err := payment.NewMethod(fl.Field().String())
	return err == nil
}
