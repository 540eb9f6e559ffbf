package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/inkstudio/booking-api/internal/model"
)

// RegisterValidations installs custom binding rules on gin's validator
// engine. Called once at startup, before any routes are served.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterStructValidation(workingHourRuleInput, model.WorkingHourRuleInput{})
}

// workingHourRuleInput rejects available days whose window is empty or
// reversed before the request reaches the service layer. Closed days carry
// an unused window and are not checked.
func workingHourRuleInput(sl validator.StructLevel) {
	in := sl.Current().Interface().(model.WorkingHourRuleInput)
	if in.IsAvailable && in.StartTime >= in.EndTime {
		sl.ReportError(in.StartTime, "start_time", "StartTime", "window", "")
	}
}
