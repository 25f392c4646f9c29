// Package picklist converts the dependency configuration of a dependent picklist field
// into a flat table of (controlling value, dependent value) pairs.
package picklist

// FieldMetadata is the definition of a dependent picklist field.
// FullName is empty if the metadata store returned no record.
type FieldMetadata struct {
	FullName string    `json:"fullName"`
	Label    string    `json:"label"`
	Type     string    `json:"type,omitempty"`
	ValueSet *ValueSet `json:"valueSet,omitempty"`
}

type ValueSet struct {
	ControllingField string         `json:"controllingField" validate:"required"`
	ValueSettings    []ValueSetting `json:"valueSettings" validate:"min=1,dive"`
}

// ValueSetting enables the dependent value for each of the controlling values.
type ValueSetting struct {
	ValueName             string   `json:"valueName" validate:"required"`
	ControllingFieldValue []string `json:"controllingFieldValue" validate:"min=1,dive,required"`
}

type DependencyPair struct {
	ControllingValue string
	DependentValue   string
}

// DependencyTable is sorted by ComparePairs.
type DependencyTable []DependencyPair

// ControllingLabel is the name of the controlling field, it is used as the first column and in the file name.
func (f FieldMetadata) ControllingLabel() string {
	if f.ValueSet == nil {
		return ""
	}
	return f.ValueSet.ControllingField
}

// DependentLabel is the name of the dependent field, it is used as the second column and in the file name.
func (f FieldMetadata) DependentLabel() string {
	return f.Label
}
