package curriculum

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// User-facing messages. Errors carry the cause; screens show these.
const (
	GoalRequiredMessage = "Please enter a subject or goal (e.g. 10th Grade Physics)."
	GenerationMessage   = "We couldn't forge the path right now. Please try again."
)

// ValidationError reports a profile that cannot be submitted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// GenerationError wraps any failure producing a learning path: a service
// error, an empty or unparsable reply, or a path with unusable modules.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate learning path: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ErrNoModules and ErrDuplicateModuleID describe a structurally valid reply
// the dashboard cannot use.
var (
	ErrNoModules         = errors.New("learning path has no modules")
	ErrDuplicateModuleID = errors.New("duplicate module id")
	ErrBlankModuleID     = errors.New("blank module id")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the one precondition for generation: a non-blank goal.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Goal" {
		return &ValidationError{Field: "goal", Message: GoalRequiredMessage}
	}
	return fmt.Errorf("validate profile: %w", err)
}

// CheckPath verifies that every module has a distinct, non-blank ID and
// that there is at least one module. Paths are never repaired.
func CheckPath(p *LearningPath) error {
	if p == nil || len(p.Modules) == 0 {
		return ErrNoModules
	}
	seen := make(map[string]struct{}, len(p.Modules))
	for i, m := range p.Modules {
		if m.ID == "" {
			return fmt.Errorf("module %d: %w", i+1, ErrBlankModuleID)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateModuleID, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}
