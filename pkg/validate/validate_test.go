package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type orderInput struct {
	Type      string  `json:"type" validate:"required,in=Rent,Buy"`
	Car       uint    `json:"car" validate:"required"`
	StartDate string  `json:"startDate" validate:"nullable,date"`
	Price     float64 `json:"price" validate:"nullable,gte=0"`
}

type userInput struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
}

func TestRequired(t *testing.T) {
	errs := Struct(orderInput{Type: "Buy"})
	assert.Contains(t, errs, "car")
	assert.Equal(t, "The car field is required.", errs["car"])
}

func TestInRule(t *testing.T) {
	errs := Struct(orderInput{Type: "Lease", Car: 4})
	assert.Equal(t, "The selected type is invalid.", errs["type"])

	errs = Struct(orderInput{Type: "Rent", Car: 4})
	assert.NotContains(t, errs, "type")
}

func TestNullableSkipsWhenEmpty(t *testing.T) {
	errs := Struct(orderInput{Type: "Buy", Car: 1})
	assert.NotContains(t, errs, "startDate")

	errs = Struct(orderInput{Type: "Buy", Car: 1, StartDate: "not-a-date"})
	assert.Equal(t, "The startDate is not a valid date.", errs["startDate"])

	errs = Struct(orderInput{Type: "Buy", Car: 1, StartDate: "2026-09-15"})
	assert.NotContains(t, errs, "startDate")
}

func TestEmail(t *testing.T) {
	errs := Struct(userInput{Name: "Priya", Email: "priya@"})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])

	errs = Struct(userInput{Name: "Priya", Email: "priya@example.com"})
	assert.Empty(t, errs)
}

func TestMinMaxOnStrings(t *testing.T) {
	errs := Struct(userInput{Name: "P", Email: "p@example.com"})
	assert.Equal(t, "The name must be at least 2 characters.", errs["name"])
}

func TestSplitRulesKeepsInParams(t *testing.T) {
	rules := splitRules("required,in=Rent,Buy,max=100")
	assert.Equal(t, []string{"required", "in=Rent,Buy", "max=100"}, rules)
}

func TestParseDateLayouts(t *testing.T) {
	for _, s := range []string{"2026-09-15", "2026-09-15T10:00:00Z", "15/09/2026"} {
		_, err := ParseDate(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}
