package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type decisionForm struct {
	Decision string  `validate:"required,oneof=approved rejected"`
	Note     *string `validate:"omitempty,max=5"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(loginForm{Email: "jane@example.com", Password: "longenough"})
	assert.NoError(t, err)
}

func TestStruct_CollectsFieldErrors(t *testing.T) {
	err := Struct(loginForm{Email: "not-an-email", Password: ""})
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)

	assert.Contains(t, verrs, "email")
	assert.Contains(t, verrs, "password")
	assert.Equal(t, "must be a valid email address", verrs["email"])
	assert.Equal(t, "this field is required", verrs["password"])
}

func TestStruct_OneofMessage(t *testing.T) {
	err := Struct(decisionForm{Decision: "maybe"})
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	assert.Equal(t, "must be one of: approved rejected", verrs["decision"])
}

func TestStruct_SnakeCasesFieldNames(t *testing.T) {
	type form struct {
		EmployeeCode string `validate:"required"`
	}
	err := Struct(form{})
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	assert.Contains(t, verrs, "employee_code")
}

func TestValidationErrors_ErrorString(t *testing.T) {
	verrs := ValidationErrors{"email": "must be a valid email address"}
	assert.Equal(t, "email: must be a valid email address", verrs.Error())
}
