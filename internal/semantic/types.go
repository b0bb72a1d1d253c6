package semantic

import "github.com/zlang-project/zsema/internal/symbol"

// ValidConversion implements the fixed four-by-four conversion matrix:
// valid(target, value) is true iff the pair is listed as assignable. int ->
// float and int -> bool are permitted; float -> int is not; strings are
// isolated from every other type.
func ValidConversion(target, value symbol.Type) bool {
	switch target {
	case symbol.TypeInt:
		return value == symbol.TypeInt
	case symbol.TypeFloat:
		return value == symbol.TypeInt || value == symbol.TypeFloat
	case symbol.TypeBool:
		return value == symbol.TypeInt || value == symbol.TypeBool
	case symbol.TypeString:
		return value == symbol.TypeString
	default:
		return false
	}
}
