package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProject wraps every structural validation failure.
var ErrInvalidProject = errors.New("invalid project")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateProject checks the structural shape a submitted project must have
// before it is persisted: ids present, known charge types, non-negative tax
// rate. Business values such as negative quantities are not rejected here.
func ValidateProject(p Project) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidProject, strings.Join(msgs, "; "))
}
