package store

import (
	"fmt"

	"tedit/datatable"
	"tedit/internal/rules"
)

// manifestRules is the Titanic rule set, in evaluation order.
var manifestRules = rules.Chain{
	rules.OneOf(ColSurvived, "Cột 'Survived' chỉ được nhập 0 hoặc 1.", "0", "1"),
	rules.OneOf(ColPclass, "Cột 'Pclass' chỉ được nhập 1, 2 hoặc 3.", "1", "2", "3"),
	rules.OneOfFold(ColSex, "Cột 'Sex' chỉ được nhập 'male' hoặc 'female'.", "male", "female"),
	rules.Number(ColAge, "gt=0,lte=146",
		"Cột 'Age' phải là số.",
		"Cột 'Age' phải lớn hơn 0 và nhỏ hơn hoặc bằng 146."),
	nonNegative(ColSibSp),
	nonNegative(ColParch),
	nonNegative(ColFare),
}

func nonNegative(col string) rules.Rule {
	return rules.Number(col, "gte=0",
		fmt.Sprintf("Cột '%s' bắt buộc phải nhập số.", col),
		fmt.Sprintf("Cột '%s' không được là số âm.", col))
}

// Validate checks the columns present in row against the manifest rules and
// returns the message of the first rule that fails. Absent columns are not
// checked, so a partial row can be validated before an update.
func Validate(row *datatable.Row) (bool, string) {
	return manifestRules.Evaluate(row)
}
