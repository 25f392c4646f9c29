package picklist

import (
	"fmt"
)

// FieldNotFoundError - the dependent field does not exist in the metadata store.
type FieldNotFoundError struct {
	Field string
}

// NoDependencyError - the field exists, but it has no controlling field or no value settings.
type NoDependencyError struct {
	Field string
}

// InvalidFieldNameError - the field name is not in the "<Object>.<Field>" form.
type InvalidFieldNameError struct {
	Field string
}

func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf(`field "%s" does not exist`, e.Field)
}

func (e NoDependencyError) Error() string {
	return fmt.Sprintf(`field "%s" has no dependency configured`, e.Field)
}

func (e InvalidFieldNameError) Error() string {
	return fmt.Sprintf(`field "%s" is not a valid field name, expected "<Object>.<Field>", for example "Account.SubStatus__c"`, e.Field)
}
