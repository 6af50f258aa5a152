package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs the validate tags of v and reports every failing field.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "service.validate")
	}

	var problems *multierror.Error
	for _, fe := range fieldErrs {
		problems = multierror.Append(problems, fieldProblem(fe))
	}
	return invalid(problems)
}

func fieldProblem(fe validator.FieldError) error {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "email":
		return fmt.Errorf("%s must be a valid email address", field)
	case "min", "max":
		return fmt.Errorf("%s must be %s %s characters", field, map[string]string{"min": "at least", "max": "at most"}[fe.Tag()], fe.Param())
	}
	return fmt.Errorf("%s is invalid (%s)", field, fe.Tag())
}

// checkSurveyInput validates a survey body, including the rule that a
// multiple-choice question needs at least one option.
func checkSurveyInput(in model.SurveyInput) error {
	var problems *multierror.Error

	if err := checkStruct(in); err != nil {
		var verr *Error
		if !errors.As(err, &verr) {
			return err
		}
		problems = multierror.Append(problems, verr.problems...)
	}

	for i, q := range in.Questions {
		if !q.IsOpenEnded && len(q.Options) == 0 {
			problems = multierror.Append(problems, fmt.Errorf("Questions[%d] is multiple choice but has no options", i))
		}
	}
	return invalid(problems)
}

func invalid(problems *multierror.Error) error {
	if problems.ErrorOrNil() == nil {
		return nil
	}
	msgs := make([]string, 0, len(problems.Errors))
	for _, p := range problems.Errors {
		msgs = append(msgs, p.Error())
	}
	return &Error{Kind: ErrValidation, Msg: strings.Join(msgs, "; "), problems: problems.Errors}
}
