package filters

import (
	"fmt"
	"strings"
)

func msgOneOf(field string, values []string) string {
	return fmt.Sprintf("The %s field must be one of the following: %s.", field, strings.Join(values, ", "))
}

func msgInteger(field string) string {
	return fmt.Sprintf("The %s field must be an integer.", field)
}

func msgAtLeast(field string, lo int) string {
	return fmt.Sprintf("The %s field must be at least %d.", field, lo)
}

func msgLessThan(field string, hi int) string {
	return fmt.Sprintf("The %s field must be less than %d.", field, hi)
}
