package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateTodoRequest is the JSON body of POST /todos. Title and description
// must be present and non-null; empty strings are accepted. Done defaults to
// false.
type CreateTodoRequest struct {
	Title       *string `json:"title"       validate:"required"`
	Description *string `json:"description" validate:"required"`
	Done        *bool   `json:"done"`
}

// Validate returns a *domain.ValidationError listing every absent field.
func (r *CreateTodoRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

// ToNewTodo converts a validated request into the domain value.
func (r *CreateTodoRequest) ToNewTodo() todo.NewTodo {
	nt := todo.NewTodo{
		Title:       *r.Title,
		Description: *r.Description,
	}
	if r.Done != nil {
		nt.Done = *r.Done
	}
	return nt
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return domain.MsgRequired
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
